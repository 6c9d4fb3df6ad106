// Package normalize canonicalizes program output before comparison.
package normalize

import (
	"strings"
	"unicode"
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Output converts line endings to LF, drops trailing whitespace on every line
// and trims the whole text. A nil output normalizes to "".
func Output(s *string) string {
	if s == nil {
		return ""
	}
	return Text(*s)
}

// Text is Output for a non-nil string.
func Text(s string) string {
	lines := strings.Split(newlines.Replace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Equal reports whether actual matches expected after normalization.
func Equal(actual *string, expected string) bool {
	return Output(actual) == Text(expected)
}

