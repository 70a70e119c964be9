// Package numeric re-tokenizes a quoteless span under the stricter
// numeric grammar (§4.6): literals in four bases, ISO-8601 timestamps,
// duration suffixes, and an arithmetic operator set, evaluated by a
// Pratt parser with a small nud/led dispatch table. It mirrors the
// outer lexer's shape — a single-error-sticky tokenizer plus a
// recursive descent consumer — grounded on the same parser.Tokenizer
// pattern as internal/lexer, re-scoped to a numeric sub-grammar.
package numeric

import (
	"github.com/k0kubun/qjsondef/internal/qjerr"
	"github.com/k0kubun/qjsondef/internal/token"
)

// Token is one inner-tokenizer output.
type Token struct {
	Tag      token.Tag
	Pos      qjerr.Pos
	IntVal   uint64
	FloatVal float64
}
