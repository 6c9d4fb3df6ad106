package judge

import (
	"context"

	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// IJudgeService judges submissions against a problem's test cases.
type IJudgeService interface {
	// Run judges the sample cases of a problem and shows all of them.
	Run(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionSummary, error)

	// Submit judges every case of a problem; only samples are shown in detail.
	Submit(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionSummary, error)

	// Evaluate judges code against caller-supplied cases.
	Evaluate(ctx context.Context, mode domain.Mode, language, code string, cases []domain.TestCase) (*domain.SubmissionSummary, error)

	// Languages lists the resolvable language names.
	Languages(ctx context.Context) (map[string]domain.BackendTarget, error)
}
