package framework

import (
	"strconv"
	"strings"
	"unicode"
)

// Version is a dotted framework version as a sequence of non-negative integers.
type Version []int

// ParseVersion parses "v4.5", "4.5.1" and similar strings. A single leading
// non-numeric marker is stripped; segments that are not numbers become 0.
func ParseVersion(s string) Version {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{0}
	}
	if r := rune(s[0]); !unicode.IsDigit(r) {
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			n = 0
		}
		v[i] = n
	}
	return v
}

func (v Version) String() string {
	if len(v) == 0 {
		return "0"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Prefers reports whether candidate should replace best.
//
// Only the common prefix is compared: the first differing element decides.
// When the prefix is equal the current best is kept, so [4] vs [4 5 1] is
// not a win for either side.
func Prefers(candidate, best Version) bool {
	n := min(len(candidate), len(best))
	for i := 0; i < n; i++ {
		if candidate[i] != best[i] {
			return candidate[i] > best[i]
		}
	}
	return false
}
