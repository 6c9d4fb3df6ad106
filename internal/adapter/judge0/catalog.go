package judge0

import (
	"context"
	"strings"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// Judge0 names runtimes like "Python (3.8.1)" or "JavaScript (Node.js 12.14.0)".
var predicates = map[string]func(name string) bool{
	"javascript": func(name string) bool {
		return strings.Contains(name, "JavaScript") && strings.Contains(name, "Node")
	},
	"python": func(name string) bool {
		return strings.HasPrefix(name, "Python")
	},
	"java": func(name string) bool {
		return strings.HasPrefix(name, "Java") && !strings.HasPrefix(name, "JavaScript")
	},
	"cpp": func(name string) bool {
		return strings.HasPrefix(name, "C++")
	},
}

// BuildCatalog picks the newest matching runtime for each logical language
// and indexes it under the language and its synonyms.
func BuildCatalog(languages []Language) runtimes.Catalog {
	catalog := runtimes.Catalog{}
	for _, logical := range runtimes.LogicalNames {
		match := predicates[logical]
		var candidates []Language
		for _, l := range languages {
			if match(l.Name) {
				candidates = append(candidates, l)
			}
		}
		best, ok := runtimes.PickNewest(candidates, func(l Language) string { return l.Name })
		if !ok {
			continue
		}
		target := domain.BackendTarget{
			Kind:       domain.BackendJudge0,
			LanguageID: best.ID,
			Name:       best.Name,
		}
		for _, name := range runtimes.Synonyms[logical] {
			if _, taken := catalog[name]; !taken {
				catalog[name] = target
			}
		}
	}
	return catalog
}

func (c *Client) FetchCatalog(ctx context.Context) (runtimes.Catalog, error) {
	languages, err := c.Languages(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCatalog(languages), nil
}
