// Package archive persists ranked word-frequency runs in SQLite.
//
// A Store is an explicit handle: callers open it, pass it to whatever needs
// it, and close it when done. Every statement is parameterized, including the
// prefix and substring filters, so user-supplied words never become SQL.
//
// Rankings read back from the archive use the same order as the in-memory
// ranker (count descending, word ascending by byte value). Schema changes bump
// schemaVersion; users delete the database to adopt a new schema.
package archive
