package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringKnownTags(t *testing.T) {
	cases := []struct {
		tag  Tag
		want string
	}{
		{EndOfInput, "EndOfInput"},
		{IntegerVal, "IntegerVal"},
		{QuotelessString, "QuotelessString"},
		{MultilineString, "MultilineString"},
		{Weeks, "Weeks"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.tag.String())
	}
}

func TestStringUnknownTag(t *testing.T) {
	assert.Equal(t, "Tag(?)", Tag(9999).String())
}
