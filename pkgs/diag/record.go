// Package diag implements the error collector: diagnostics bucketed by
// input file, rendered with caret-underlined source context.
package diag

import "github.com/nyxlang/nyxc/pkgs/lexer"

// Record is one diagnostic: a message anchored at a byte offset and
// line within a single file, tagged as an error or a warning.
type Record struct {
	Message    string
	FileOffset uint32
	Line       uint32
	IsWarning  bool
}

// bucket tracks the records for one file plus its running counts.
type bucket struct {
	records  []Record
	errors   int
	warnings int
}
