// Package report runs the end-to-end word frequency pipeline for one input
// file: read, tokenize, tabulate, rank, select, export, and optionally archive.
//
// Each stage consumes an immutable value from the previous one. The Runner
// holds only collaborators (logger, optional archive store) and is safe to
// reuse across inputs.
package report
