package lexer

import (
	"bytes"

	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// Emit renders an outer-tokenizer string token as a JSON-quoted,
// escaped value, per §4.7. Each input flavor has its own escaping
// rules; none of them require re-validating UTF-8 since the tokenizer
// already did that while isolating the slice.
func Emit(tok Token) ([]byte, *qjerr.Diagnostic) {
	switch tok.Tag {
	case token.DoubleQuotedString:
		return emitDelimited(tok, false)
	case token.SingleQuotedString:
		return emitDelimited(tok, true)
	case token.QuotelessString:
		return emitQuoteless(tok.Value), nil
	case token.MultilineString:
		body := multilineBody(tok.Value, tok.Margin, tok.NewlineSpec)
		out := make([]byte, 0, len(body)+2)
		out = append(out, '"')
		out = append(out, body...)
		out = append(out, '"')
		return out, nil
	}
	return nil, qjerr.New("syntax error", tok.Pos)
}

// emitDelimited handles double- and single-quoted strings. The only
// difference is that a single-quoted \' decodes to a literal quote
// character instead of passing an escape through.
func emitDelimited(tok Token, singleQuoted bool) ([]byte, *qjerr.Diagnostic) {
	content := tok.Value[1 : len(tok.Value)-1]
	out := make([]byte, 0, len(content)+2)
	out = append(out, '"')

	for i := 0; i < len(content); {
		c := content[i]
		if c == '\\' {
			if i+1 >= len(content) {
				return nil, qjerr.New("invalid escape sequence", escapePos(tok, i))
			}
			esc := content[i+1]
			if singleQuoted && esc == '\'' {
				out = appendJSONByte(out, '\'', false)
				i += 2
				continue
			}
			switch esc {
			case 't', 'n', 'r', 'f', 'b', '"', '\\', '/':
				out = append(out, '\\', esc)
				i += 2
			case 'u':
				if i+6 > len(content) || !isHex4(content[i+2:i+6]) {
					return nil, qjerr.New("invalid escape sequence", escapePos(tok, i))
				}
				out = append(out, content[i:i+6]...)
				i += 6
			default:
				return nil, qjerr.New("invalid escape sequence", escapePos(tok, i))
			}
			continue
		}
		prevWasLess := i > 0 && content[i-1] == '<'
		out = appendJSONByte(out, c, prevWasLess)
		i++
	}

	out = append(out, '"')
	return out, nil
}

func escapePos(tok Token, contentOffset int) qjerr.Pos {
	return qjerr.Pos{Offset: tok.Pos.Offset + 1 + contentOffset, LineStart: tok.Pos.LineStart, Line: tok.Pos.Line}
}

func isHex4(b []byte) bool {
	for _, c := range b {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// emitQuoteless escapes only what §4.4/§4.7 name: interior backslash
// and quote, tab, and a slash immediately after '<'. Everything else,
// including other control bytes, passes through unchanged.
func emitQuoteless(value []byte) []byte {
	out := make([]byte, 0, len(value)+2)
	out = append(out, '"')
	for i, c := range value {
		switch c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\t':
			out = append(out, '\\', 't')
		case '/':
			if i > 0 && value[i-1] == '<' {
				out = append(out, '\\', '/')
			} else {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}
	out = append(out, '"')
	return out
}

// multilineBody re-walks a raw multiline token slice (opening backtick
// through closing backtick inclusive), skipping the header — optional
// whitespace, the newline specifier, optional whitespace, then either a
// comment or a real newline — and then, per content line, the margin.
// Interior newlines become the specifier's literal escape bytes; the
// newline ending the last content line is dropped when the closing
// backtick follows it after nothing but the margin. Control bytes and
// '<'+'/' are escaped as in appendJSONByte; a backtick immediately
// followed by backslash collapses to one literal backtick.
func multilineBody(value, margin []byte, spec string) []byte {
	i := 1
	i += skipInline(value[i:])
	i += skipSpecifier(value[i:])
	i += skipInline(value[i:])
	if i < len(value) && (value[i] == '#' || (value[i] == '/' && i+1 < len(value) && value[i+1] == '/')) {
		for i < len(value) && value[i] != '\n' && value[i] != '\r' {
			i++
		}
	}
	if i < len(value) && value[i] == '\r' && i+1 < len(value) && value[i+1] == '\n' {
		i += 2
	} else if i < len(value) && value[i] == '\n' {
		i++
	}

	end := len(value) - 1
	var out []byte
	atLineStart := true
	for i < end {
		if atLineStart && len(margin) > 0 && i+len(margin) <= end && bytes.Equal(value[i:i+len(margin)], margin) {
			i += len(margin)
		}
		atLineStart = false
		if i >= end {
			break
		}
		c := value[i]
		if c == '`' && i+1 < end && value[i+1] == '\\' {
			out = append(out, '`')
			i += 2
			continue
		}
		if c == '\r' && i+1 < end && value[i+1] == '\n' {
			if bytes.Equal(value[i+2:end], margin) {
				break
			}
			out = appendNewlineEscape(out, spec)
			i += 2
			atLineStart = true
			continue
		}
		if c == '\n' {
			if bytes.Equal(value[i+1:end], margin) {
				break
			}
			out = appendNewlineEscape(out, spec)
			i++
			atLineStart = true
			continue
		}
		prevWasLess := i > 0 && value[i-1] == '<'
		out = appendJSONByte(out, c, prevWasLess)
		i++
	}
	return out
}

func skipInline(b []byte) int {
	n := 0
	for n < len(b) {
		w, ok := isWhitespace(b[n:])
		if !ok {
			break
		}
		n += w
	}
	return n
}

func skipSpecifier(b []byte) int {
	if len(b) >= 4 && b[0] == '\\' && b[1] == 'r' && b[2] == '\\' && b[3] == 'n' {
		return 4
	}
	if len(b) >= 2 && b[0] == '\\' && b[1] == 'n' {
		return 2
	}
	return 0
}

func appendNewlineEscape(out []byte, spec string) []byte {
	if spec == "\r\n" {
		return append(out, '\\', 'r', '\\', 'n')
	}
	return append(out, '\\', 'n')
}

// appendJSONByte writes one raw content byte to out, escaping what
// JSON requires plus the "<" + "/" defensive pair.
func appendJSONByte(out []byte, b byte, prevWasLess bool) []byte {
	switch b {
	case '"':
		return append(out, '\\', '"')
	case '\\':
		return append(out, '\\', '\\')
	case '\t':
		return append(out, '\\', 't')
	case '\n':
		return append(out, '\\', 'n')
	case '\r':
		return append(out, '\\', 'r')
	case '\f':
		return append(out, '\\', 'f')
	case '\b':
		return append(out, '\\', 'b')
	}
	if b < 0x20 {
		const hex = "0123456789abcdef"
		return append(out, '\\', 'u', '0', '0', hex[b>>4], hex[b&0xF])
	}
	if b == '/' && prevWasLess {
		return append(out, '\\', '/')
	}
	return append(out, b)
}
