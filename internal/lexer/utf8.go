package lexer

// decodeChar classifies the byte sequence at the front of b the way the
// source's 256-entry class table plus 12-entry range table do: every lead
// byte selects a required total width and a second-byte range, and bytes
// 2..n must fall in [0x80,0xBF].
//
// There is no third-party UTF-8 validator among the pack's dependencies,
// and the spec's classifier is a fixed lookup table anyway, so this stays
// a hand-rolled byte table rather than reaching for unicode/utf8 (which
// is saved for counting already-validated runes in qjerr.Pos.Column).
//
// Returns the consumed width and ok=true on a valid sequence. ok=false,
// truncated=true means the lead byte demands more bytes than remain.
// ok=false, truncated=false means the byte or its continuation is simply
// invalid.
func decodeChar(b []byte) (size int, ok bool, truncated bool) {
	if len(b) == 0 {
		return 0, false, false
	}
	c := b[0]
	total, special := leadWidth(c)
	if total == 0 {
		return 0, false, false
	}
	if total == 1 {
		return 1, true, false
	}
	if len(b) < total {
		return 0, false, true
	}
	lo, hi := secondByteRange(special)
	if b[1] < lo || b[1] > hi {
		return 0, false, false
	}
	for i := 2; i < total; i++ {
		if b[i] < 0x80 || b[i] > 0xBF {
			return 0, false, false
		}
	}
	return total, true, false
}

// leadWidth reports the total sequence width for lead byte c, and a
// special marker identifying one of the four lead bytes (0xE0, 0xED,
// 0xF0, 0xF4) whose second-byte range is narrower than the generic
// [0x80,0xBF] window.
func leadWidth(c byte) (total int, special byte) {
	switch {
	case c < 0x80:
		return 1, 0
	case c >= 0xC2 && c <= 0xDF:
		return 2, 0
	case c == 0xE0:
		return 3, 0xE0
	case c >= 0xE1 && c <= 0xEC:
		return 3, 0
	case c == 0xED:
		return 3, 0xED
	case c >= 0xEE && c <= 0xEF:
		return 3, 0
	case c == 0xF0:
		return 4, 0xF0
	case c >= 0xF1 && c <= 0xF3:
		return 4, 0
	case c == 0xF4:
		return 4, 0xF4
	default:
		return 0, 0
	}
}

func secondByteRange(special byte) (lo, hi byte) {
	switch special {
	case 0xE0:
		return 0xA0, 0xBF
	case 0xED:
		return 0x80, 0x9F
	case 0xF0:
		return 0x90, 0xBF
	case 0xF4:
		return 0x80, 0x8F
	default:
		return 0x80, 0xBF
	}
}

func isWhitespace(b []byte) (width int, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	if b[0] == ' ' || b[0] == '\t' {
		return 1, true
	}
	if b[0] == 0xC2 && len(b) > 1 && b[1] == 0xA0 {
		return 2, true
	}
	return 0, false
}
