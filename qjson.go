// Package qjson exposes the public decode/version surface (§6) that
// glues the tokenizer, numeric sub-engine, and structure builder
// together — the same role sqldef.Run plays gluing the teacher's
// schema and adapter packages into one entry point.
package qjson

import (
	"fmt"

	"github.com/k0kubun/qjsondef/internal/builder"
)

// cVersion and syntaxVersion track the engine implementation and the
// QJSON grammar it accepts, independently, per §6's Version contract.
const (
	cVersion      = "1.0.0"
	syntaxVersion = "1.0.0"
)

// Decode converts QJSON text to canonical JSON text. On success the
// result starts with '{'; on failure it is a human-readable diagnostic
// ending in " at line L col C" and never starts with '{' (§6, §8).
// Go callers get the two cases back as one string, the same away the
// underlying C library's NUL-terminated buffer does — language-neutral
// ports are free to drop the terminator, and a native Go string already
// has none.
func Decode(text string) string {
	out, err := builder.Decode([]byte(text))
	if err != nil {
		return err.Format([]byte(text))
	}
	return string(out)
}

// Version returns a fixed string of the form
// "qjson-c: vX.Y.Z syntax: vA.B.C" (§6).
func Version() string {
	return fmt.Sprintf("qjson-c: v%s syntax: v%s", cVersion, syntaxVersion)
}
