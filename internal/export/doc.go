// Package export turns ranked entries into a "word,count" CSV table and reads
// such tables back.
//
// Files are written atomically under an advisory lock so a failed or
// concurrent export never leaves a half-written table at the destination.
package export
