// Package qjerr carries source positions and diagnostics across the
// tokenizer, numeric sub-engine and structure builder so that an error
// raised deep inside a re-entered expression still reports a line/column
// anchored in the original input, per the teacher's own convention of
// attaching Tokenizer.Position to every parse error (see
// parser.Tokenizer.Error in the vendored sqlparser).
package qjerr

import (
	"strconv"
	"unicode/utf8"
)

// Pos locates a byte in the input: its absolute offset, the offset of
// the start of its line, and the (0-based) line index. Column numbers
// are derived lazily by counting UTF-8 code points from LineStart.
type Pos struct {
	Offset    int
	LineStart int
	Line      int
}

// Column returns the 1-based column of p, counting UTF-8 code points
// from the start of its line.
func (p Pos) Column(input []byte) int {
	if p.Offset < p.LineStart {
		return 1
	}
	return utf8.RuneCount(input[p.LineStart:p.Offset]) + 1
}

// Diagnostic is a sticky decode error: one message and the exact
// position at which it was diagnosed. It satisfies the error interface
// so it can flow through ordinary Go error returns; Format appends the
// "at line L col C" suffix once the original input is back in scope.
type Diagnostic struct {
	Message string
	Pos     Pos
}

func New(message string, pos Pos) *Diagnostic {
	return &Diagnostic{Message: message, Pos: pos}
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Format renders the final user-visible diagnostic text.
func (d *Diagnostic) Format(input []byte) string {
	return d.Message + " at line " + strconv.Itoa(d.Pos.Line+1) + " col " + strconv.Itoa(d.Pos.Column(input))
}
