package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k0kubun/qjsondef/internal/token"
)

func scanAll(t *testing.T, input string) []Token {
	t.Helper()
	tz := New([]byte(input))
	var toks []Token
	for {
		tok, err := tz.Next()
		if err != nil {
			toks = append(toks, tok)
			return toks
		}
		toks = append(toks, tok)
		if tok.Tag == token.EndOfInput {
			return toks
		}
	}
}

func TestDelimitersAndPunctuation(t *testing.T) {
	toks := scanAll(t, "{}[]:,")
	tags := []token.Tag{token.OpenBrace, token.CloseBrace, token.OpenSquare, token.CloseSquare, token.Colon, token.Comma, token.EndOfInput}
	assert.Len(t, toks, len(tags))
	for i, tag := range tags {
		assert.Equal(t, tag, toks[i].Tag)
	}
}

func TestSkipsLineAndBlockComments(t *testing.T) {
	toks := scanAll(t, "# a comment\n// also a comment\n/* block\ncomment */key")
	assert.Equal(t, token.QuotelessString, toks[0].Tag)
	assert.Equal(t, "key", string(toks[0].Value))
}

func TestLoneCarriageReturnIsInvalid(t *testing.T) {
	tz := New([]byte("a\rb"))
	_, err := tz.Next()
	assert.NoError(t, err)
	_, err = tz.Next()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}

func TestDoubleQuotedStringUnclosed(t *testing.T) {
	tz := New([]byte(`"abc`))
	_, err := tz.Next()
	assert.Error(t, err)
	assert.Equal(t, "unclosed double-quoted string", err.Error())
}

func TestSingleQuotedStringNewlineRejected(t *testing.T) {
	tz := New([]byte("'abc\ndef'"))
	_, err := tz.Next()
	assert.Error(t, err)
	assert.Equal(t, "newline in single-quoted string", err.Error())
}

func TestQuotelessStopsAtComma(t *testing.T) {
	toks := scanAll(t, "foo, bar")
	assert.Equal(t, token.QuotelessString, toks[0].Tag)
	assert.Equal(t, "foo", string(toks[0].Value))
	assert.Equal(t, token.Comma, toks[1].Tag)
}

func TestQuotelessTrimsTrailingWhitespace(t *testing.T) {
	toks := scanAll(t, "foo   \n")
	assert.Equal(t, "foo", string(toks[0].Value))
}

func TestQuotelessTimestampColonNotSplit(t *testing.T) {
	toks := scanAll(t, "2024-01-15T10:30:00")
	assert.Equal(t, token.QuotelessString, toks[0].Tag)
	assert.Equal(t, "2024-01-15T10:30:00", string(toks[0].Value))
}

func TestQuotelessNonTimestampColonStops(t *testing.T) {
	toks := scanAll(t, "label: value")
	assert.Equal(t, "label", string(toks[0].Value))
	assert.Equal(t, token.Colon, toks[1].Tag)
}

func TestMultilineStringBasic(t *testing.T) {
	input := "  `\\n\n  hello\n  world\n  `"
	tz := New([]byte(input))
	tok, err := tz.Next()
	assert.NoError(t, err)
	assert.Equal(t, token.MultilineString, tok.Tag)
	assert.Equal(t, "  ", string(tok.Margin))
	assert.Equal(t, "\n", tok.NewlineSpec)
}

func TestMultilineMarginMismatch(t *testing.T) {
	input := "  `\\n\nhello\n  `"
	tz := New([]byte(input))
	_, err := tz.Next()
	assert.Error(t, err)
}

func TestStickyErrorRepeats(t *testing.T) {
	tz := New([]byte(`"abc`))
	_, err1 := tz.Next()
	_, err2 := tz.Next()
	assert.Same(t, err1, err2)
}

func TestEmitDoubleQuotedEscapes(t *testing.T) {
	tz := New([]byte(`"a\tb\né"`))
	tok, err := tz.Next()
	assert.NoError(t, err)
	out, err := Emit(tok)
	assert.NoError(t, err)
	assert.Equal(t, `"a\tb\né"`, string(out))
}

func TestEmitInvalidEscapeSequence(t *testing.T) {
	tz := New([]byte(`"a\qb"`))
	tok, err := tz.Next()
	assert.NoError(t, err)
	_, err = Emit(tok)
	assert.Error(t, err)
	assert.Equal(t, "invalid escape sequence", err.Error())
}

func TestEmitSingleQuotedLiteralQuote(t *testing.T) {
	tz := New([]byte(`'it\'s fine'`))
	tok, err := tz.Next()
	assert.NoError(t, err)
	out, err := Emit(tok)
	assert.NoError(t, err)
	assert.Equal(t, `"it's fine"`, string(out))
}

func TestEmitQuotelessEscapesLessSlash(t *testing.T) {
	out := emitQuoteless([]byte("<script></script>"))
	assert.Equal(t, `"<script><\/script>"`, string(out))
}

func TestEmitMultilineSubstitutesNewlines(t *testing.T) {
	input := "  `\\n\n  hello\n  world\n  `"
	tz := New([]byte(input))
	tok, err := tz.Next()
	assert.NoError(t, err)
	out, err := Emit(tok)
	assert.NoError(t, err)
	assert.Equal(t, `"hello\nworld"`, string(out))
}
