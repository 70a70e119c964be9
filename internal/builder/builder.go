package builder

import (
	"github.com/k0kubun/qjsondef/internal/lexer"
	"github.com/k0kubun/qjsondef/internal/numeric"
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// DefaultMaxDepth bounds the count of currently open '{' or '['
// containers (§3's Invariants, §4.5's depth enforcement): the 201st
// one fails. The CLI's --options file may override this operating
// limit without touching the engine's grammar (SPEC_FULL.md's
// configuration section).
const DefaultMaxDepth = 200

// Decode converts QJSON bytes to canonical JSON bytes, or returns the
// sticky diagnostic that stopped it. An empty input is a special case
// (§6): it succeeds with "{}" without touching the tokenizer at all.
func Decode(input []byte) ([]byte, *qjerr.Diagnostic) {
	return DecodeWithDepth(input, DefaultMaxDepth)
}

// DecodeWithDepth is Decode with a caller-chosen nesting-depth limit.
func DecodeWithDepth(input []byte, maxDepth int) ([]byte, *qjerr.Diagnostic) {
	if len(input) == 0 {
		return []byte("{}"), nil
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	b := &builder{tz: lexer.New(input), out: NewOutputBuffer(), maxDepth: maxDepth}
	if err := b.advance(); err != nil {
		return nil, err
	}

	var err *qjerr.Diagnostic
	if b.cur.Tag == token.OpenBrace {
		err = b.parseValue()
	} else {
		err = b.parseTopLevelMembers()
	}
	if err != nil {
		return nil, err
	}
	if b.cur.Tag != token.EndOfInput {
		return nil, qjerr.New("syntax error", b.cur.Pos)
	}
	return b.out.Bytes(), nil
}

type builder struct {
	tz       *lexer.Tokenizer
	cur      lexer.Token
	out      *OutputBuffer
	depth    int
	maxDepth int
}

func (b *builder) advance() *qjerr.Diagnostic {
	tok, err := b.tz.Next()
	b.cur = tok
	return err
}

// parseValue implements the "value" state of §4.5.
func (b *builder) parseValue() *qjerr.Diagnostic {
	switch b.cur.Tag {
	case token.CloseSquare:
		return qjerr.New("unexpected close square", b.cur.Pos)
	case token.CloseBrace:
		return qjerr.New("unexpected close brace", b.cur.Pos)
	case token.DoubleQuotedString, token.SingleQuotedString, token.MultilineString:
		json, err := lexer.Emit(b.cur)
		if err != nil {
			return err
		}
		b.out.Write(json)
		return b.advance()
	case token.QuotelessString:
		return b.parseQuotelessValue()
	case token.OpenBrace:
		openPos := b.cur.Pos
		if b.depth == b.maxDepth {
			return qjerr.New("max object/array depth exceeded", openPos)
		}
		b.depth++
		if err := b.advance(); err != nil {
			return err
		}
		if err := b.parseObjectBody(openPos); err != nil {
			return err
		}
		b.depth--
		return nil
	case token.OpenSquare:
		openPos := b.cur.Pos
		if b.depth == b.maxDepth {
			return qjerr.New("max object/array depth exceeded", openPos)
		}
		b.depth++
		if err := b.advance(); err != nil {
			return err
		}
		if err := b.parseArrayBody(openPos); err != nil {
			return err
		}
		b.depth--
		return nil
	default:
		return qjerr.New("syntax error", b.cur.Pos)
	}
}

// parseQuotelessValue resolves a quoteless slice as a literal name, a
// numeric expression, or a plain escaped string, in that order (§4.5).
func (b *builder) parseQuotelessValue() *qjerr.Diagnostic {
	tok := b.cur
	if canon, ok := literalName(string(tok.Value)); ok {
		b.out.WriteString(canon)
		return b.advance()
	}
	if isNumberExpr(tok.Value) {
		result, err := numeric.Evaluate(tok.Value, tok.Pos)
		if err != nil {
			return err
		}
		b.out.WriteString(numeric.Format(result))
		return b.advance()
	}
	json, err := lexer.Emit(tok)
	if err != nil {
		return err
	}
	b.out.Write(json)
	return b.advance()
}

// parseObjectBody implements "members" (§4.5): b.cur is already
// positioned just past the opening '{'.
func (b *builder) parseObjectBody(openPos qjerr.Pos) *qjerr.Diagnostic {
	b.out.WriteByte('{')
	first := true
	for {
		if b.cur.Tag == token.EndOfInput {
			return qjerr.New("unclosed object", openPos)
		}
		if b.cur.Tag == token.CloseBrace {
			break
		}
		if !first {
			b.out.WriteByte(',')
			if b.cur.Tag == token.Comma {
				if err := b.advance(); err != nil {
					return err
				}
				if b.cur.Tag == token.EndOfInput {
					return qjerr.New("unclosed object", openPos)
				}
				if b.cur.Tag == token.CloseBrace {
					return qjerr.New("expected identifier after comma", b.cur.Pos)
				}
			}
		}
		if err := b.parseMember(); err != nil {
			return err
		}
		first = false
	}
	if err := b.advance(); err != nil {
		return err
	}
	b.out.WriteByte('}')
	return nil
}

// parseTopLevelMembers implements the top-level document when it does
// not open with an explicit '{': a bare member list terminated by
// end-of-input instead of a closing brace, wrapped in one (§4.5, §2).
func (b *builder) parseTopLevelMembers() *qjerr.Diagnostic {
	b.out.WriteByte('{')
	first := true
	for {
		if b.cur.Tag == token.EndOfInput {
			break
		}
		if !first {
			b.out.WriteByte(',')
			if b.cur.Tag == token.Comma {
				if err := b.advance(); err != nil {
					return err
				}
				if b.cur.Tag == token.EndOfInput {
					return qjerr.New("expected identifier after comma", b.cur.Pos)
				}
			}
		}
		if err := b.parseMember(); err != nil {
			return err
		}
		first = false
	}
	b.out.WriteByte('}')
	return nil
}

// parseMember parses one `identifier ':' value` pair. Identifiers are
// always emitted as plain escaped strings — the literal-name and
// numeric-expression special cases belong to "value", not "members".
func (b *builder) parseMember() *qjerr.Diagnostic {
	switch b.cur.Tag {
	case token.DoubleQuotedString, token.SingleQuotedString, token.QuotelessString:
		json, err := lexer.Emit(b.cur)
		if err != nil {
			return err
		}
		b.out.Write(json)
	default:
		return qjerr.New("expected string identifier", b.cur.Pos)
	}
	if err := b.advance(); err != nil {
		return err
	}
	if b.cur.Tag != token.Colon {
		return qjerr.New("expected colon", b.cur.Pos)
	}
	if err := b.advance(); err != nil {
		return err
	}
	b.out.WriteByte(':')
	return b.parseValue()
}

// parseArrayBody implements "values" (§4.5): b.cur is already
// positioned just past the opening '['.
func (b *builder) parseArrayBody(openPos qjerr.Pos) *qjerr.Diagnostic {
	b.out.WriteByte('[')
	first := true
	for {
		if b.cur.Tag == token.EndOfInput {
			return qjerr.New("unclosed array", openPos)
		}
		if b.cur.Tag == token.CloseSquare {
			break
		}
		if !first {
			b.out.WriteByte(',')
			if b.cur.Tag == token.Comma {
				if err := b.advance(); err != nil {
					return err
				}
				if b.cur.Tag == token.EndOfInput {
					return qjerr.New("unclosed array", openPos)
				}
				if b.cur.Tag == token.CloseSquare {
					return qjerr.New("expected value after comma", b.cur.Pos)
				}
			}
		}
		if err := b.parseValue(); err != nil {
			return err
		}
		first = false
	}
	if err := b.advance(); err != nil {
		return err
	}
	b.out.WriteByte(']')
	return nil
}
