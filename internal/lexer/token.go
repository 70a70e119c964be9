package lexer

import (
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// Token is one outer-tokenizer output: a tag, the position of its first
// byte, and (for the four string tags) the raw source slice it was
// scanned from. Margin and NewlineSpec are only meaningful on
// MultilineString tokens.
type Token struct {
	Tag         token.Tag
	Pos         qjerr.Pos
	Value       []byte
	Margin      []byte
	NewlineSpec string
}
