package builder

// literalName maps every case variant from §6's recognition table to
// its canonical JSON form.
func literalName(s string) (string, bool) {
	switch s {
	case "true", "True", "TRUE", "yes", "Yes", "YES", "on", "On", "ON":
		return "true", true
	case "false", "False", "FALSE", "no", "No", "NO", "off", "Off", "OFF":
		return "false", true
	case "null", "Null", "NULL":
		return "null", true
	}
	return "", false
}

// isNumberExpr reports whether a quoteless value's slice opens with a
// sign, space, or parenthesis run followed by a digit or ".digit" —
// the §4.5 heuristic that decides whether to hand the slice to the
// numeric sub-engine instead of emitting it as a plain string.
func isNumberExpr(v []byte) bool {
	i := 0
	for i < len(v) {
		switch v[i] {
		case '+', '-', '(', ' ', '\t':
			i++
			continue
		}
		break
	}
	if i >= len(v) {
		return false
	}
	if v[i] >= '0' && v[i] <= '9' {
		return true
	}
	if v[i] == '.' && i+1 < len(v) && v[i+1] >= '0' && v[i+1] <= '9' {
		return true
	}
	return false
}
