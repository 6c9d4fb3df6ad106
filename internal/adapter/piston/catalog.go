package piston

import (
	"context"

	mapset "github.com/deckarep/golang-set/v2"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// BuildCatalog indexes every runtime under its language and aliases, keeping
// the newest version per name, then fills in the logical names from their
// synonyms.
func BuildCatalog(list []Runtime) runtimes.Catalog {
	candidates := map[string][]Runtime{}
	var order []string
	for _, rt := range list {
		names := mapset.NewThreadUnsafeSet[string](runtimes.Key(rt.Language))
		for _, alias := range rt.Aliases {
			if key := runtimes.Key(alias); key != "" {
				names.Add(key)
			}
		}
		for name := range names.Iter() {
			if _, seen := candidates[name]; !seen {
				order = append(order, name)
			}
			candidates[name] = append(candidates[name], rt)
		}
	}

	catalog := runtimes.Catalog{}
	for _, name := range order {
		best, ok := runtimes.PickNewest(candidates[name], func(r Runtime) string { return r.Version })
		if !ok {
			continue
		}
		catalog[name] = domain.BackendTarget{
			Kind:     domain.BackendPiston,
			Language: best.Language,
			Version:  best.Version,
			Name:     best.Language + " " + best.Version,
		}
	}

	for _, logical := range runtimes.LogicalNames {
		if _, ok := catalog[logical]; ok {
			continue
		}
		for _, synonym := range runtimes.Synonyms[logical] {
			if target, ok := catalog[synonym]; ok {
				catalog[logical] = target
				break
			}
		}
	}
	return catalog
}

func (c *Client) FetchCatalog(ctx context.Context) (runtimes.Catalog, error) {
	list, err := c.Runtimes(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCatalog(list), nil
}
