// Package iso8601 recognizes the ISO-8601 timestamp literal accepted by
// both the outer tokenizer (to decide whether a ':' inside a quoteless
// span belongs to a timestamp or terminates the span) and the numeric
// sub-engine (where a recognized timestamp becomes a DecimalVal token).
//
// There is no third-party date/time parser among the pack's dependency
// surface that fits a fixed-width, byte-exact literal grammar better
// than a hand-rolled scanner driving the standard library's time.Date —
// the platform's broken-down-time-to-UTC helper referenced by the spec.
package iso8601

import "time"

// Parse attempts to match "YYYY-MM-DDTHH:MM[:SS[.fraction][Z|±HH:MM]]"
// at the start of b. On success it returns the UTC seconds-since-epoch
// value, the number of bytes consumed, and ok=true.
func Parse(b []byte) (seconds float64, length int, ok bool) {
	const minLen = len("YYYY-MM-DDTHH:MM")
	if len(b) < minLen {
		return 0, 0, false
	}

	year, ok1 := digits(b[0:4])
	if !ok1 || b[4] != '-' {
		return 0, 0, false
	}
	month, ok2 := digits(b[5:7])
	if !ok2 || b[7] != '-' {
		return 0, 0, false
	}
	day, ok3 := digits(b[8:10])
	if !ok3 || b[10] != 'T' {
		return 0, 0, false
	}
	hour, ok4 := digits(b[11:13])
	if !ok4 || b[13] != ':' {
		return 0, 0, false
	}
	minute, ok5 := digits(b[14:16])
	if !ok5 {
		return 0, 0, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || minute > 59 {
		return 0, 0, false
	}

	pos := minLen
	second := 0
	var frac float64

	if pos < len(b) && b[pos] == ':' {
		if pos+3 > len(b) {
			return 0, 0, false
		}
		s, ok := digits(b[pos+1 : pos+3])
		if !ok || s > 60 {
			return 0, 0, false
		}
		second = s
		pos += 3

		if pos < len(b) && b[pos] == '.' {
			j := pos + 1
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			n := j - (pos + 1)
			if n != 3 && n != 6 {
				return 0, 0, false
			}
			var num int
			for _, c := range b[pos+1 : j] {
				num = num*10 + int(c-'0')
			}
			div := 1000.0
			if n == 6 {
				div = 1000000.0
			}
			frac = float64(num) / div
			pos = j
		}
	}

	// A trailing "Z" or "+HH:MM"/"-HH:MM" offset is recognized and its
	// shape validated (so a malformed offset still fails the match),
	// but the broken-down fields above are taken as the UTC seconds
	// value as-is, offset unapplied: per spec.md §8's worked example,
	// "1997-07-16T19:20+01:00" decodes to 869080800, the same value
	// "1997-07-16T19:20" alone would produce.
	if pos < len(b) {
		switch {
		case b[pos] == 'Z' || b[pos] == 'z':
			pos++
		case b[pos] == '+' || b[pos] == '-':
			if pos+6 > len(b) || b[pos+3] != ':' {
				return 0, 0, false
			}
			oh, ok1 := digits(b[pos+1 : pos+3])
			om, ok2 := digits(b[pos+4 : pos+6])
			if !ok1 || !ok2 || oh > 23 || om > 59 {
				return 0, 0, false
			}
			pos += 6
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	unix := float64(t.Unix()) + frac
	return unix, pos, true
}

func digits(b []byte) (int, bool) {
	n := 0
	for _, c := range b {
		if !isDigit(c) {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
