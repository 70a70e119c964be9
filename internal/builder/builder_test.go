package builder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func decode(t *testing.T, input string) string {
	t.Helper()
	out, err := Decode([]byte(input))
	assert.NoError(t, err)
	return string(out)
}

func TestDecodeEmptyInput(t *testing.T) {
	assert.Equal(t, "{}", decode(t, ""))
}

func TestDecodeBareMemberList(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":2}`, decode(t, "a: 1, b: 2"))
}

func TestDecodeExplicitObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, decode(t, "{a: 1}"))
}

func TestDecodeNestedArrayAndObject(t *testing.T) {
	assert.Equal(t, `{"a":[1,2,{"b":3}]}`, decode(t, "a: [1, 2, {b: 3}]"))
}

func TestDecodeTrailingCommaRejected(t *testing.T) {
	_, err := Decode([]byte("a: 1, b: 2,"))
	assert.Error(t, err)
	assert.Equal(t, "expected identifier after comma", err.Error())
}

func TestDecodeOptionalCommasBetweenNewlines(t *testing.T) {
	assert.Equal(t, `{"a":1,"b":2}`, decode(t, "a: 1\nb: 2\n"))
}

func TestDecodeLiteralNames(t *testing.T) {
	assert.Equal(t, `{"a":true,"b":false,"c":null}`, decode(t, "a: Yes, b: Off, c: NULL"))
}

func TestDecodeQuotedStringValue(t *testing.T) {
	assert.Equal(t, `{"a":"hello"}`, decode(t, `a: "hello"`))
}

func TestDecodeQuotelessStringValue(t *testing.T) {
	assert.Equal(t, `{"a":"hello world"}`, decode(t, "a: hello world"))
}

func TestDecodeNumericExpressionValue(t *testing.T) {
	assert.Equal(t, `{"a":14}`, decode(t, "a: 2 + 3 * 4"))
}

func TestDecodeUnclosedObject(t *testing.T) {
	_, err := Decode([]byte("{a: 1"))
	assert.Error(t, err)
	assert.Equal(t, "unclosed object", err.Error())
}

func TestDecodeUnclosedArray(t *testing.T) {
	_, err := Decode([]byte("a: [1, 2"))
	assert.Error(t, err)
	assert.Equal(t, "unclosed array", err.Error())
}

func TestDecodeMaxDepthExceeded(t *testing.T) {
	input := strings.Repeat("{a:", 201) + "1" + strings.Repeat("}", 201)
	_, err := Decode([]byte(input))
	assert.Error(t, err)
	assert.Equal(t, "max object/array depth exceeded", err.Error())
}

func TestDecodeWithDepthAllowsHigherLimit(t *testing.T) {
	input := strings.Repeat("{a:", 201) + "1" + strings.Repeat("}", 201)
	_, err := DecodeWithDepth([]byte(input), 300)
	assert.NoError(t, err)
}

func TestDecodeAtMaxDepthExactlySucceeds(t *testing.T) {
	input := strings.Repeat("{a:", 200) + "1" + strings.Repeat("}", 200)
	out, err := Decode([]byte(input))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `{"a":{"a":`))
}

func TestDecodeExpectedColon(t *testing.T) {
	_, err := Decode([]byte("a 1"))
	assert.Error(t, err)
	assert.Equal(t, "expected colon", err.Error())
}
