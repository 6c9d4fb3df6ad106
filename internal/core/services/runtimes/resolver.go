// Package runtimes resolves logical language names to backend runtimes
// through a TTL cache over the backend's runtime list.
package runtimes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

const DefaultTTL = 600 * time.Second

// Catalog maps normalized language names to backend targets.
type Catalog map[string]domain.BackendTarget

// CatalogFetcher downloads the backend's runtime list and applies its selection policy.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) (Catalog, error)
}

type CatalogFetcherFunc func(ctx context.Context) (Catalog, error)

func (f CatalogFetcherFunc) FetchCatalog(ctx context.Context) (Catalog, error) {
	return f(ctx)
}

type Option func(*Resolver)

func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func WithLogger(logger primary.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolver owns one backend's runtime cache. A hit inside the TTL never
// touches the network; a miss or an expired cache replaces the whole catalog.
type Resolver struct {
	fetcher CatalogFetcher
	ttl     time.Duration
	now     func() time.Time
	logger  primary.Logger

	mu          sync.RWMutex
	catalog     Catalog
	refreshedAt time.Time

	group singleflight.Group
}

func NewResolver(fetcher CatalogFetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the target for language. Unknown names trigger a refresh
// and fail with *errs.UnsupportedLanguageError if still unknown afterwards.
func (r *Resolver) Resolve(ctx context.Context, language string) (domain.BackendTarget, error) {
	key := Key(language)

	if target, ok := r.lookup(key); ok {
		return target, nil
	}

	catalog, err := r.Refresh(ctx)
	if err != nil {
		return domain.BackendTarget{}, err
	}
	target, ok := catalog[key]
	if !ok {
		return domain.BackendTarget{}, &errs.UnsupportedLanguageError{Language: language}
	}
	return target, nil
}

// Catalog returns a copy of the cached catalog, refreshing it when stale.
func (r *Resolver) Catalog(ctx context.Context) (Catalog, error) {
	r.mu.RLock()
	fresh := r.freshLocked()
	catalog := r.catalog
	r.mu.RUnlock()

	if !fresh {
		var err error
		if catalog, err = r.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	out := make(Catalog, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out, nil
}

// Refresh fetches the runtime list and swaps the catalog in. Concurrent
// callers share one fetch. The fetch outlives a caller that gives up, so a
// cancelled request never fails the others waiting on it; it stays bounded by
// the backend client's timeout.
func (r *Resolver) Refresh(ctx context.Context) (Catalog, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan("refresh", func() (interface{}, error) {
		catalog, err := r.fetcher.FetchCatalog(fetchCtx)
		if err != nil {
			return nil, fmt.Errorf("fetch runtimes: %w", err)
		}
		r.mu.Lock()
		r.catalog = catalog
		r.refreshedAt = r.now()
		r.mu.Unlock()
		if r.logger != nil {
			r.logger.Debug("runtime catalog refreshed", "entries", len(catalog))
		}
		return catalog, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			if r.logger != nil {
				r.logger.Warn("runtime catalog refresh failed", "error", res.Err)
			}
			return nil, res.Err
		}
		return res.Val.(Catalog), nil
	}
}

func (r *Resolver) lookup(key string) (domain.BackendTarget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.freshLocked() {
		return domain.BackendTarget{}, false
	}
	target, ok := r.catalog[key]
	return target, ok
}

func (r *Resolver) freshLocked() bool {
	return r.catalog != nil && r.now().Sub(r.refreshedAt) < r.ttl
}
