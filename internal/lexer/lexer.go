// Package lexer implements the outer byte tokenizer: position tracking,
// UTF-8 validation, trivia skipping, and emission of delimiter, string,
// and quoteless tokens. It is grounded on the teacher's hand-rolled
// parser.Tokenizer (parser/token.go) — a single struct walking an input
// byte slice with an explicit cursor, a sticky last error, and a Scan
// loop dispatching on the lead byte — generalized from SQL lexemes to
// the QJSON grammar.
package lexer

import (
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// Tokenizer walks input once, left to right. Like parser.Tokenizer it
// keeps a single sticky error: once set, every subsequent Next call
// returns it unchanged instead of resuming the scan.
type Tokenizer struct {
	input []byte
	pos   qjerr.Pos
	err   *qjerr.Diagnostic
}

func New(input []byte) *Tokenizer {
	return &Tokenizer{input: input}
}

func (t *Tokenizer) Input() []byte { return t.input }

func (t *Tokenizer) atEnd() bool { return t.pos.Offset >= len(t.input) }

func (t *Tokenizer) advance(n int) { t.pos.Offset += n }

func (t *Tokenizer) newline(n int) {
	t.pos.Offset += n
	t.pos.Line++
	t.pos.LineStart = t.pos.Offset
}

func (t *Tokenizer) fail(message string, pos qjerr.Pos) (Token, *qjerr.Diagnostic) {
	d := qjerr.New(message, pos)
	t.err = d
	return Token{Tag: token.ErrorTag, Pos: pos}, d
}

// decodeCharAt validates and returns the width of the character at the
// cursor, failing the tokenizer on invalid or truncated UTF-8.
func (t *Tokenizer) decodeCharAt(off int) (int, *qjerr.Diagnostic) {
	n, ok, truncated := decodeChar(t.input[off:])
	if ok {
		return n, nil
	}
	pos := qjerr.Pos{Offset: off, LineStart: t.pos.LineStart, Line: t.pos.Line}
	if truncated {
		d := qjerr.New("truncated character", pos)
		t.err = d
		return 0, d
	}
	d := qjerr.New("invalid character", pos)
	t.err = d
	return 0, d
}

// Next returns the next non-trivial token. Once an error has been
// diagnosed, every subsequent call returns that same error.
func (t *Tokenizer) Next() (Token, *qjerr.Diagnostic) {
	if t.err != nil {
		return Token{Tag: token.ErrorTag, Pos: t.err.Pos}, t.err
	}
	if d := t.skipTrivia(); d != nil {
		return Token{Tag: token.ErrorTag, Pos: d.Pos}, d
	}
	if t.atEnd() {
		return Token{Tag: token.EndOfInput, Pos: t.pos}, nil
	}

	start := t.pos
	b := t.input[t.pos.Offset]
	switch b {
	case '{':
		t.advance(1)
		return Token{Tag: token.OpenBrace, Pos: start}, nil
	case '}':
		t.advance(1)
		return Token{Tag: token.CloseBrace, Pos: start}, nil
	case '[':
		t.advance(1)
		return Token{Tag: token.OpenSquare, Pos: start}, nil
	case ']':
		t.advance(1)
		return Token{Tag: token.CloseSquare, Pos: start}, nil
	case ',':
		t.advance(1)
		return Token{Tag: token.Comma, Pos: start}, nil
	case ':':
		t.advance(1)
		return Token{Tag: token.Colon, Pos: start}, nil
	case '"':
		return t.scanQuoted(start, '"', token.DoubleQuotedString, "unclosed double-quoted string", "newline in double-quoted string")
	case '\'':
		return t.scanQuoted(start, '\'', token.SingleQuotedString, "unclosed single-quoted string", "newline in single-quoted string")
	case '`':
		return t.scanMultiline(start)
	default:
		return t.scanQuoteless(start)
	}
}

// skipTrivia consumes whitespace, newlines, and comments until the
// cursor sits at end-of-input or a non-trivial byte.
func (t *Tokenizer) skipTrivia() *qjerr.Diagnostic {
	for {
		if t.atEnd() {
			return nil
		}
		b := t.input[t.pos.Offset]
		if n, ok := isWhitespace(t.input[t.pos.Offset:]); ok {
			t.advance(n)
			continue
		}
		switch b {
		case '\n':
			t.newline(1)
			continue
		case '\r':
			if t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '\n' {
				t.newline(2)
				continue
			}
			pos := t.pos
			d := qjerr.New("invalid character", pos)
			t.err = d
			return d
		case '#':
			if d := t.skipLineComment(); d != nil {
				return d
			}
			continue
		case '/':
			if t.pos.Offset+1 < len(t.input) {
				switch t.input[t.pos.Offset+1] {
				case '/':
					if d := t.skipLineComment(); d != nil {
						return d
					}
					continue
				case '*':
					if d := t.skipBlockComment(); d != nil {
						return d
					}
					continue
				}
			}
			return nil
		default:
			return nil
		}
	}
}

// skipLineComment consumes a '#' or '//' comment through but not past
// the next newline or end-of-input.
func (t *Tokenizer) skipLineComment() *qjerr.Diagnostic {
	if t.input[t.pos.Offset] == '#' {
		t.advance(1)
	} else {
		t.advance(2)
	}
	for !t.atEnd() {
		b := t.input[t.pos.Offset]
		if b == '\n' || b == '\r' {
			return nil
		}
		n, d := t.decodeCharAt(t.pos.Offset)
		if d != nil {
			return d
		}
		t.advance(n)
	}
	return nil
}

// skipBlockComment consumes a /*...*/ comment, accepting any byte
// including newlines and control bytes, per §4.2.
func (t *Tokenizer) skipBlockComment() *qjerr.Diagnostic {
	start := t.pos
	t.advance(2)
	for {
		if t.atEnd() {
			d := qjerr.New("unclosed block comment", start)
			t.err = d
			return d
		}
		b := t.input[t.pos.Offset]
		if b == '*' && t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '/' {
			t.advance(2)
			return nil
		}
		if b == '\n' {
			t.newline(1)
			continue
		}
		if b == '\r' {
			if t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '\n' {
				t.newline(2)
			} else {
				t.advance(1)
			}
			continue
		}
		n, d := t.decodeCharAt(t.pos.Offset)
		if d != nil {
			return d
		}
		t.advance(n)
	}
}
