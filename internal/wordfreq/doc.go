// Package wordfreq tokenizes free text and ranks word frequencies.
//
// The pipeline is split into small pure stages so each can be tested on its
// own:
//   - Tokenize replaces configured punctuation with spaces, lowercases the
//     text, and splits it on whitespace. Each invalid UTF-8 byte becomes
//     U+FFFD, so distinct malformed byte runs of equal length count as one word
//   - Tabulate counts every token into an immutable Table
//   - Rank orders a Table by descending count with an ascending word
//     tie-break and exposes cheap sub-range views
//
// FindPhrase supports the companion "where does this phrase occur" question
// asked of the same documents.
package wordfreq
