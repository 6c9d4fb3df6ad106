package runtimes

import (
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`(\d+(?:\.\d+)*)`)

// ParseVersion extracts the first dotted numeric version from s.
// It returns nil when s carries no digits.
func ParseVersion(s string) []int {
	m := versionPattern.FindString(s)
	if m == "" {
		return nil
	}
	parts := strings.Split(m, ".")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			// overflowing component
			n = int(^uint(0) >> 1)
		}
		out = append(out, n)
	}
	return out
}

// CompareVersions orders two parsed versions component by component; a
// missing component counts as lower than any present one.
func CompareVersions(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Newer reports whether version string a is strictly newer than b.
func Newer(a, b string) bool {
	return CompareVersions(ParseVersion(a), ParseVersion(b)) > 0
}

// PickNewest returns the item with the highest parsed version. Ties keep the
// earliest item.
func PickNewest[T any](items []T, version func(T) string) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestVersion := ParseVersion(version(best))
	for _, item := range items[1:] {
		v := ParseVersion(version(item))
		if CompareVersions(v, bestVersion) > 0 {
			best, bestVersion = item, v
		}
	}
	return best, true
}
