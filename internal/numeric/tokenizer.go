package numeric

import (
	"github.com/k0kubun/qjsondef/internal/iso8601"
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// Tokenizer re-scans a quoteless span. Positions are reported in the
// coordinate space of the original input: base is the position of
// span[0], and since a quoteless span never contains a real newline
// (the outer lexer stops at one), every offset inside it shares base's
// Line and LineStart.
type Tokenizer struct {
	span  []byte
	base  qjerr.Pos
	local int
	err   *qjerr.Diagnostic
}

func New(span []byte, base qjerr.Pos) *Tokenizer {
	return &Tokenizer{span: span, base: base}
}

func (t *Tokenizer) pos() qjerr.Pos {
	return qjerr.Pos{Offset: t.base.Offset + t.local, LineStart: t.base.LineStart, Line: t.base.Line}
}

func (t *Tokenizer) posAt(local int) qjerr.Pos {
	return qjerr.Pos{Offset: t.base.Offset + local, LineStart: t.base.LineStart, Line: t.base.Line}
}

func (t *Tokenizer) skipSpace() {
	for t.local < len(t.span) {
		c := t.span[t.local]
		if c == ' ' || c == '\t' {
			t.local++
			continue
		}
		if c == 0xC2 && t.local+1 < len(t.span) && t.span[t.local+1] == 0xA0 {
			t.local += 2
			continue
		}
		return
	}
}

// Next returns the next inner token, in the priority order §4.6 names:
// operator/duration letter, ISO date-time, then the numeric literal
// forms.
func (t *Tokenizer) Next() (Token, *qjerr.Diagnostic) {
	if t.err != nil {
		return Token{Tag: token.ErrorTag, Pos: t.err.Pos}, t.err
	}
	t.skipSpace()
	startPos := t.pos()
	if t.local >= len(t.span) {
		return Token{Tag: token.EndOfInput, Pos: startPos}, nil
	}
	b := t.span[t.local]

	if tag, ok := singleByteTag(b); ok {
		t.local++
		return Token{Tag: tag, Pos: startPos}, nil
	}

	if sec, n, ok := iso8601.Parse(t.span[t.local:]); ok {
		t.local += n
		return Token{Tag: token.DecimalVal, Pos: startPos, FloatVal: sec}, nil
	}

	if tok, d, matched := t.tryNumber(startPos); matched {
		if d != nil {
			t.err = d
			return Token{Tag: token.ErrorTag, Pos: startPos}, d
		}
		return tok, nil
	}

	d := qjerr.New("invalid numeric expression", startPos)
	t.err = d
	return Token{Tag: token.ErrorTag, Pos: startPos}, d
}

func singleByteTag(b byte) (token.Tag, bool) {
	switch b {
	case '+':
		return token.Plus, true
	case '-':
		return token.Minus, true
	case '*':
		return token.Multiplication, true
	case '/':
		return token.Division, true
	case '%':
		return token.Modulo, true
	case '&':
		return token.And, true
	case '|':
		return token.Or, true
	case '^':
		return token.Xor, true
	case '~':
		return token.Inverse, true
	case '(':
		return token.OpenParen, true
	case ')':
		return token.CloseParen, true
	case 'w':
		return token.Weeks, true
	case 'd':
		return token.Days, true
	case 'h':
		return token.Hours, true
	case 'm':
		return token.Minutes, true
	case 's':
		return token.Seconds, true
	}
	return token.Unknown, false
}
