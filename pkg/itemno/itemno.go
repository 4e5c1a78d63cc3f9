package itemno

import (
	"regexp"
	"strings"
)

// An IKEA item number is 8 digits, canonically displayed as dot-separated
// groups of 3/3/2 ("123.456.78"). Both the compact and the formatted
// spelling are accepted everywhere; the compact spelling is the cache key.
//
// Properties:
//   - Pure: no state, no I/O
//   - Deterministic: same input always produces same output
//   - Idempotent: Format(Compact(s)) == Format(s) for any valid item number

var itemNoPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{2}$`)

// IsItemNo reports whether s is a valid item number in either spelling.
func IsItemNo(s string) bool {
	return itemNoPattern.MatchString(s)
}

// Compact strips every non-digit character from s.
func Compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Format returns the canonical dotted spelling of an item number.
// Input that does not compact to exactly 8 digits is returned compacted
// and ungrouped.
func Format(s string) string {
	compact := Compact(s)
	if len(compact) != 8 {
		return compact
	}
	return compact[0:3] + "." + compact[3:6] + "." + compact[6:8]
}
