package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --- Emit helpers ---

// isTSIdentifier reports whether s can appear unquoted as an object
// literal key. Names with spaces, hyphens or a leading digit must be
// quoted instead.
func isTSIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$') {
				return false
			}
		} else {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '$') {
				return false
			}
		}
	}
	return true
}

// objectKey returns an object literal key. Valid identifiers pass
// through bare, everything else is quoted. The name `__proto__` uses
// computed property syntax so object literals never trip the prototype
// setter.
func objectKey(name string) string {
	if name == "__proto__" {
		return `["__proto__"]`
	}
	if isTSIdentifier(name) {
		return name
	}
	return `"` + escapeString(name) + `"`
}

// escapeString escapes s for embedding inside a double-quoted string
// literal in the generated source. Handles backslashes, quotes, control
// characters (< 0x20), and Unicode line/paragraph separators.
func escapeString(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\u2028':
			buf.WriteString(`\u2028`)
		case '\u2029':
			buf.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				buf.WriteString(fmt.Sprintf(`\x%02x`, r))
			} else {
				buf.WriteRune(r)
			}
		}
	}
	return buf.String()
}

// formatNumber prints n the shortest way that parses back to the same
// value in the generated source. Integral values inside the safe range
// print without an exponent.
func formatNumber(n float64) string {
	if math.Trunc(n) == n && math.Abs(n) < 1<<53 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
