package eval

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNumber implements spec §4.2's num() string coercion: decimal,
// "0x…"/"$…" hex, "0b…"/"%…" binary, otherwise 0.
func parseNumber(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var v int64
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v = parseBase(s[2:], 16)
	case strings.HasPrefix(s, "$"):
		v = parseBase(s[1:], 16)
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		v = parseBase(s[2:], 2)
	case strings.HasPrefix(s, "%"):
		v = parseBase(s[1:], 2)
	default:
		v = parseBase(s, 10)
	}
	if neg {
		return -v
	}
	return v
}

func parseBase(s string, base int) int64 {
	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		// fall back to the longest valid numeric prefix, matching the
		// source's permissive scanf-style parsing rather than failing
		// outright on trailing garbage.
		for i := len(s); i > 0; i-- {
			if n2, err2 := strconv.ParseInt(s[:i], base, 64); err2 == nil {
				return n2
			}
		}
		return 0
	}
	return n
}

// renderNumber implements spec §4.2's str() rendering of a Number:
// base-10 decimal.
func renderNumber(v int64) string {
	return fmt.Sprintf("%d", v)
}
