// Package memory holds in-process fallbacks for external stores.
package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

var _ secondary.SummaryStore = (*SummaryStore)(nil)

type entry struct {
	summary   *domain.SubmissionSummary
	expiresAt time.Time
}

// SummaryStore keeps summaries in a concurrent map. Expired entries are
// dropped when read or when Save sweeps.
type SummaryStore struct {
	entries *xsync.MapOf[uuid.UUID, entry]
	ttl     time.Duration
	now     func() time.Time
}

func NewSummaryStore(ttl time.Duration) *SummaryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SummaryStore{
		entries: xsync.NewMapOf[uuid.UUID, entry](),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *SummaryStore) Save(_ context.Context, summary *domain.SubmissionSummary) error {
	now := s.now()
	s.entries.Range(func(id uuid.UUID, e entry) bool {
		if now.After(e.expiresAt) {
			s.entries.Delete(id)
		}
		return true
	})
	s.entries.Store(summary.ID, entry{summary: summary, expiresAt: now.Add(s.ttl)})
	return nil
}

func (s *SummaryStore) Get(_ context.Context, submissionID uuid.UUID) (*domain.SubmissionSummary, error) {
	e, ok := s.entries.Load(submissionID)
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		s.entries.Delete(submissionID)
		return nil, nil
	}
	return e.summary, nil
}

func (s *SummaryStore) Len() int {
	return s.entries.Size()
}
