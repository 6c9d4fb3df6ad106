package secondary

import (
	"context"

	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

type TestCaseRepository interface {
	// ListByProblem returns every case of a problem ordered by order then id.
	ListByProblem(ctx context.Context, problemID int64) ([]domain.TestCase, error)
}
