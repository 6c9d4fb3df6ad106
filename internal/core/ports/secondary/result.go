package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// SummaryStore keeps recently judged submissions for retrieval.
type SummaryStore interface {
	Save(ctx context.Context, summary *domain.SubmissionSummary) error

	// Get returns nil without error when the submission is unknown or expired.
	Get(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionSummary, error)
}

// ResultSink observes judging progress.
type ResultSink interface {
	CaseFinished(ctx context.Context, submissionID uuid.UUID, index int, result domain.CaseResult)
	SubmissionFinished(ctx context.Context, summary *domain.SubmissionSummary)
}
