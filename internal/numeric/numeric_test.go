package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k0kubun/qjsondef/internal/qjerr"
)

func eval(t *testing.T, expr string) float64 {
	t.Helper()
	v, err := Evaluate([]byte(expr), qjerr.Pos{})
	assert.NoError(t, err)
	return v
}

func TestEvaluateArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, float64(14), eval(t, "2 + 3 * 4"))
	assert.Equal(t, float64(20), eval(t, "(2 + 3) * 4"))
}

func TestEvaluateUnaryMinusAndPlus(t *testing.T) {
	assert.Equal(t, float64(-5), eval(t, "-5"))
	assert.Equal(t, float64(5), eval(t, "+5"))
}

func TestEvaluateBitwiseOperators(t *testing.T) {
	assert.Equal(t, float64(255), eval(t, "0xff | 0b1"))
	assert.Equal(t, float64(0), eval(t, "0xff & 0b1_0000_0000"))
	assert.Equal(t, float64(5), eval(t, "5 ^ 0"))
	assert.Equal(t, float64(-6), eval(t, "~5"))
}

func TestEvaluateDivisionAlwaysDecimal(t *testing.T) {
	assert.Equal(t, float64(5), eval(t, "10 / 2"))
	assert.Equal(t, 2.5, eval(t, "5 / 2"))
}

func TestEvaluateModuloRequiresIntegers(t *testing.T) {
	assert.Equal(t, float64(1), eval(t, "7 % 2"))
	_, err := Evaluate([]byte("7.5 % 2"), qjerr.Pos{})
	assert.Error(t, err)
	assert.Equal(t, "operand must be integer", err.Error())
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := Evaluate([]byte("1 / 0"), qjerr.Pos{})
	assert.Error(t, err)
	assert.Equal(t, "division by zero", err.Error())
}

func TestEvaluateDurationChain(t *testing.T) {
	assert.Equal(t, float64(1*604800+2*86400+3*3600+4*60+5), eval(t, "1w2d3h4m5s"))
}

func TestEvaluateDurationFraction(t *testing.T) {
	assert.Equal(t, float64(5400), eval(t, "1.5h"))
}

func TestEvaluateDurationStopsAtPlus(t *testing.T) {
	assert.Equal(t, float64(3605), eval(t, "1h + 5"))
}

func TestEvaluateRadixLiterals(t *testing.T) {
	assert.Equal(t, float64(10), eval(t, "0b1010"))
	assert.Equal(t, float64(8), eval(t, "0o10"))
	assert.Equal(t, float64(255), eval(t, "0xFF"))
}

func TestEvaluateLegacyOctal(t *testing.T) {
	assert.Equal(t, float64(493), eval(t, "0755"))
}

func TestEvaluateLegacyOctalFallsBackToDecimal(t *testing.T) {
	assert.Equal(t, float64(89), eval(t, "089"))
}

func TestEvaluateUnderscoreSeparators(t *testing.T) {
	assert.Equal(t, float64(1000000), eval(t, "1_000_000"))
}

func TestEvaluateTrailingUnderscoreIsInvalid(t *testing.T) {
	_, err := Evaluate([]byte("1_000_"), qjerr.Pos{})
	assert.Error(t, err)
}

func TestEvaluateOverflow(t *testing.T) {
	_, err := Evaluate([]byte("0xFFFFFFFFFFFFFFFFF"), qjerr.Pos{})
	assert.Error(t, err)
	assert.Equal(t, "number overflow", err.Error())
}

func TestEvaluateISO8601Timestamp(t *testing.T) {
	v := eval(t, "2024-01-15T10:30")
	assert.Equal(t, float64(1705314600), v)
}

func TestEvaluateISO8601TimestampWithOffset(t *testing.T) {
	v := eval(t, "1997-07-16T19:20+01:00")
	assert.Equal(t, float64(869080800), v)
}

func TestEvaluateUnopenedParenthesis(t *testing.T) {
	_, err := Evaluate([]byte("1)"), qjerr.Pos{})
	assert.Error(t, err)
	assert.Equal(t, "unopened parenthesis", err.Error())
}

func TestEvaluateUnclosedParenthesis(t *testing.T) {
	_, err := Evaluate([]byte("(1 + 2"), qjerr.Pos{})
	assert.Error(t, err)
	assert.Equal(t, "unclosed parenthesis", err.Error())
}

func TestFormatShortestRoundTrip(t *testing.T) {
	assert.Equal(t, "5400", Format(5400))
	assert.Equal(t, "2.5", Format(2.5))
}
