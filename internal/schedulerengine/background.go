package schedulerengine

import (
	"context"
	"sync"
	"time"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
)

// CatalogWarmer keeps the backend's runtime catalog fresh in the background
// so the first submission after boot does not pay for the fetch.
type CatalogWarmer struct {
	backend  secondary.Backend
	interval time.Duration
	logger   primary.Logger
	wg       sync.WaitGroup
}

func NewCatalogWarmer(backend secondary.Backend, interval time.Duration, logger primary.Logger) *CatalogWarmer {
	return &CatalogWarmer{
		backend:  backend,
		interval: interval,
		logger:   logger,
	}
}

// Start refreshes once and then on every tick until ctx is done. A zero
// interval disables the warmer.
func (s *CatalogWarmer) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Runtime catalog warmer disabled")
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresh(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()
}

// Wait blocks until the warmer goroutine has exited.
func (s *CatalogWarmer) Wait() {
	s.wg.Wait()
}

func (s *CatalogWarmer) refresh(ctx context.Context) {
	if err := s.backend.RefreshRuntimes(ctx); err != nil {
		s.logger.Error("Failed to refresh runtime catalog", "backend", s.backend.Kind(), "error", err)
		return
	}
	s.logger.Debug("Runtime catalog refreshed", "backend", s.backend.Kind())
}
