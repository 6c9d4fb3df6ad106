package runtimes

import "strings"

// Logical names every backend must be able to resolve, with the names they
// may be known by on a backend, in lookup order.
var Synonyms = map[string][]string{
	"javascript": {"javascript", "js", "node", "nodejs"},
	"python":     {"python", "py"},
	"java":       {"java"},
	"cpp":        {"cpp", "c++", "cxx"},
}

// LogicalNames is the fixed iteration order over Synonyms.
var LogicalNames = []string{"javascript", "python", "java", "cpp"}

// Key normalizes a language name for catalog lookups.
func Key(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
