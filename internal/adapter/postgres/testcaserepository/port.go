// Package testcaserepository reads problem test cases from PostgreSQL.
package testcaserepository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
	querybuilder "gitlab.com/fcv-2025.net/codejudge/internal/utils"
)

var _ secondary.TestCaseRepository = (*TestCaseRepository)(nil)

type TestCaseRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) *TestCaseRepository {
	if schema == "" {
		schema = "public"
	}
	return &TestCaseRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *TestCaseRepository) ListByProblem(ctx context.Context, problemID int64) ([]domain.TestCase, error) {
	exists, err := r.problemExists(ctx, problemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.ErrProblemNotFound
	}

	tbl := domain.GetTestCaseTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.InputText, tbl.OutputText, tbl.IsSample, tbl.Order).
		From(tbl.GetTableName()).
		Where(tbl.ProblemID+" = ?", problemID).
		OrderBy(tbl.Order, true).
		OrderBy(tbl.ID, true).
		Build()
	query = r.db.Rebind(query)

	cases := make([]domain.TestCase, 0)
	if err := r.db.SelectContext(ctx, &cases, query, args...); err != nil {
		r.logger.Error("Failed to load test cases", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}
	return cases, nil
}

func (r *TestCaseRepository) problemExists(ctx context.Context, problemID int64) (bool, error) {
	query := r.db.Rebind(fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s.problems WHERE id = ?)", r.schema))
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, problemID); err != nil {
		r.logger.Error("Failed to look up problem", "problemId", problemID, "error", err)
		return false, fmt.Errorf("failed to look up problem: %w", err)
	}
	return exists, nil
}
