package iso8601

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDateTimeMinute(t *testing.T) {
	seconds, length, ok := Parse([]byte("2024-01-15T10:30"))
	assert.True(t, ok)
	assert.Equal(t, len("2024-01-15T10:30"), length)
	assert.Equal(t, float64(1705314600), seconds)
}

func TestParseWithSecondsAndOffset(t *testing.T) {
	seconds, length, ok := Parse([]byte("2024-01-15T10:30:15+02:00"))
	assert.True(t, ok)
	assert.Equal(t, len("2024-01-15T10:30:15+02:00"), length)
	assert.Equal(t, float64(1705314600+15), seconds)
}

func TestParseOffsetDoesNotShiftResult(t *testing.T) {
	// spec.md §8's worked example: the trailing offset is validated but
	// not applied, so this matches the no-offset reading of the same
	// timestamp exactly.
	seconds, length, ok := Parse([]byte("1997-07-16T19:20+01:00"))
	assert.True(t, ok)
	assert.Equal(t, len("1997-07-16T19:20+01:00"), length)
	assert.Equal(t, float64(869080800), seconds)
}

func TestParseWithFractionAndZ(t *testing.T) {
	_, length, ok := Parse([]byte("2024-01-15T10:30:15.500Z"))
	assert.True(t, ok)
	assert.Equal(t, len("2024-01-15T10:30:15.500Z"), length)
}

func TestParseStopsAtTrailingGarbage(t *testing.T) {
	_, length, ok := Parse([]byte("2024-01-15T10:30 rest of the text"))
	assert.True(t, ok)
	assert.Equal(t, len("2024-01-15T10:30"), length)
}

func TestParseRejectsInvalidMonth(t *testing.T) {
	_, _, ok := Parse([]byte("2024-13-15T10:30"))
	assert.False(t, ok)
}

func TestParseRejectsTooShort(t *testing.T) {
	_, _, ok := Parse([]byte("2024-01-15"))
	assert.False(t, ok)
}

func TestParseRejectsBadFractionWidth(t *testing.T) {
	_, _, ok := Parse([]byte("2024-01-15T10:30:15.5Z"))
	assert.False(t, ok)
}
