package lexer

import (
	"bytes"

	"github.com/k0kubun/qjsondef/internal/iso8601"
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// scanQuoted handles both double- and single-quoted strings: interior
// \<delim> is a literal escape, no real newline is allowed, any other
// UTF-8 char is accepted. The returned slice spans opening to closing
// delimiter inclusive.
func (t *Tokenizer) scanQuoted(start qjerr.Pos, delim byte, tag token.Tag, unclosedMsg, newlineMsg string) (Token, *qjerr.Diagnostic) {
	t.advance(1)
	for {
		if t.atEnd() {
			return t.fail(unclosedMsg, start)
		}
		b := t.input[t.pos.Offset]
		if b == '\n' || b == '\r' {
			return t.fail(newlineMsg, start)
		}
		if b == '\\' {
			t.advance(1)
			if t.atEnd() {
				return t.fail(unclosedMsg, start)
			}
			n, d := t.decodeCharAt(t.pos.Offset)
			if d != nil {
				return Token{Tag: token.ErrorTag, Pos: d.Pos}, d
			}
			t.advance(n)
			continue
		}
		if b == delim {
			t.advance(1)
			value := t.input[start.Offset:t.pos.Offset]
			return Token{Tag: tag, Pos: start, Value: value}, nil
		}
		n, d := t.decodeCharAt(t.pos.Offset)
		if d != nil {
			return Token{Tag: token.ErrorTag, Pos: d.Pos}, d
		}
		t.advance(n)
	}
}

func isAllWhitespace(b []byte) bool {
	for len(b) > 0 {
		n, ok := isWhitespace(b)
		if !ok {
			return false
		}
		b = b[n:]
	}
	return true
}

func (t *Tokenizer) skipInlineWhitespace() {
	for {
		n, ok := isWhitespace(t.input[t.pos.Offset:])
		if !ok {
			return
		}
		t.advance(n)
	}
}

// matchNewlineSpecifier recognizes the literal 2- or 4-byte sequence
// "\n" or "\r\n" (backslash followed by letters, not control bytes) at
// the cursor, per the glossary's "newline specifier" entry.
func (t *Tokenizer) matchNewlineSpecifier() (spec string, length int, errMsg string) {
	b := t.input[t.pos.Offset:]
	if len(b) >= 2 && b[0] == '\\' && b[1] == 'n' {
		return "\n", 2, ""
	}
	if len(b) >= 4 && b[0] == '\\' && b[1] == 'r' && b[2] == '\\' && b[3] == 'n' {
		return "\r\n", 4, ""
	}
	if len(b) == 0 || b[0] != '\\' {
		return "", 0, "missing newline specifier"
	}
	return "", 0, "invalid newline specifier"
}

// scanMultiline parses a multiline string per §4.3: a margin validated
// against the current line's prefix, a mandatory newline specifier,
// then content lines each required to repeat the margin byte-for-byte.
func (t *Tokenizer) scanMultiline(start qjerr.Pos) (Token, *qjerr.Diagnostic) {
	margin := t.input[start.LineStart:start.Offset]
	if !isAllWhitespace(margin) {
		return t.fail("margin must be whitespace only", start)
	}
	t.advance(1)

	t.skipInlineWhitespace()

	spec, specLen, errMsg := t.matchNewlineSpecifier()
	if errMsg != "" {
		return t.fail(errMsg, t.pos)
	}
	t.advance(specLen)

	t.skipInlineWhitespace()

	if d := t.consumeMultilineHeaderEnd(); d != nil {
		return Token{Tag: token.ErrorTag, Pos: d.Pos}, d
	}

	for {
		if len(margin) > 0 {
			if t.pos.Offset+len(margin) > len(t.input) || !bytes.Equal(t.input[t.pos.Offset:t.pos.Offset+len(margin)], margin) {
				return t.fail("invalid margin character", t.pos)
			}
			t.advance(len(margin))
		}

		for {
			if t.atEnd() {
				return t.fail("unclosed multiline string", start)
			}
			c := t.input[t.pos.Offset]
			if c == '`' {
				if t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '\\' {
					t.advance(2)
					continue
				}
				t.advance(1)
				value := t.input[start.Offset:t.pos.Offset]
				return Token{Tag: token.MultilineString, Pos: start, Value: value, Margin: margin, NewlineSpec: spec}, nil
			}
			if c == '\n' {
				t.newline(1)
				break
			}
			if c == '\r' && t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '\n' {
				t.newline(2)
				break
			}
			n, d := t.decodeCharAt(t.pos.Offset)
			if d != nil {
				return Token{Tag: token.ErrorTag, Pos: d.Pos}, d
			}
			t.advance(n)
		}
	}
}

// consumeMultilineHeaderEnd expects (after the newline specifier and
// any trailing whitespace) either a real newline or a line comment
// ending the header line.
func (t *Tokenizer) consumeMultilineHeaderEnd() *qjerr.Diagnostic {
	if t.atEnd() {
		return nil
	}
	b := t.input[t.pos.Offset]
	switch {
	case b == '\n':
		t.newline(1)
		return nil
	case b == '\r' && t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '\n':
		t.newline(2)
		return nil
	case b == '#':
		if d := t.skipLineComment(); d != nil {
			return d
		}
	case b == '/' && t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '/':
		if d := t.skipLineComment(); d != nil {
			return d
		}
	default:
		d := qjerr.New("invalid multiline start", t.pos)
		t.err = d
		return d
	}
	if t.atEnd() {
		return nil
	}
	if t.input[t.pos.Offset] == '\n' {
		t.newline(1)
		return nil
	}
	if t.input[t.pos.Offset] == '\r' && t.pos.Offset+1 < len(t.input) && t.input[t.pos.Offset+1] == '\n' {
		t.newline(2)
		return nil
	}
	d := qjerr.New("invalid multiline start", t.pos)
	t.err = d
	return d
}

// scanQuoteless consumes a run of bytes up to (not including) the next
// stop byte: a structural delimiter, comment opener, newline, or a ':'
// that is not part of an ISO-8601 timestamp. Trailing whitespace is
// trimmed from the returned slice; an entirely empty result produces no
// token (the caller then treats the position as end-of-input, §4.4).
func (t *Tokenizer) scanQuoteless(start qjerr.Pos) (Token, *qjerr.Diagnostic) {
	lastEnd := t.pos
	hasContent := false

scan:
	for !t.atEnd() {
		b := t.input[t.pos.Offset]
		switch b {
		case ',', '{', '}', '[', ']', '\n', '\r', '#':
			break scan
		case '/':
			if t.pos.Offset+1 < len(t.input) {
				n := t.input[t.pos.Offset+1]
				if n == '/' || n == '*' {
					break scan
				}
			}
		case ':':
			if t.pos.Offset-t.pos.LineStart >= 13 {
				begin := t.pos.Offset - 13
				if _, length, ok := iso8601.Parse(t.input[begin:]); ok {
					consumedAlready := t.pos.Offset - begin
					if remaining := length - consumedAlready; remaining > 0 {
						t.advance(remaining)
					}
					lastEnd = t.pos
					hasContent = true
					continue
				}
			}
			break scan
		}

		n, d := t.decodeCharAt(t.pos.Offset)
		if d != nil {
			return Token{Tag: token.ErrorTag, Pos: d.Pos}, d
		}
		_, isWS := isWhitespace(t.input[t.pos.Offset:])
		t.advance(n)
		if !isWS {
			lastEnd = t.pos
			hasContent = true
		}
	}

	if !hasContent {
		return Token{Tag: token.EndOfInput, Pos: start}, nil
	}
	value := t.input[start.Offset:lastEnd.Offset]
	return Token{Tag: token.QuotelessString, Pos: start, Value: value}, nil
}
