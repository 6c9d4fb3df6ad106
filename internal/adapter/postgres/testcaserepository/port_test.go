package testcaserepository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/postgres/testcaserepository"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

const (
	existsQuery = `SELECT EXISTS (SELECT 1 FROM public.problems WHERE id = $1)`
	casesQuery  = `SELECT id, input_text, output_text, is_sample, "order" FROM public.problem_test_cases WHERE problem_id = $1 ORDER BY "order" ASC, id ASC`
)

func newRepo(t *testing.T) (*testcaserepository.TestCaseRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return testcaserepository.New(sqlx.NewDb(db, "postgres"), logging.NewNopLogger(), "public"), mock
}

func TestListByProblem(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(casesQuery)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "input_text", "output_text", "is_sample", "order"}).
			AddRow(int64(1), "1 2", "3", true, 1).
			AddRow(int64(2), "10 20", "30", false, 2))

	cases, err := repo.ListByProblem(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, int64(1), *cases[0].ID)
	assert.True(t, cases[0].IsSample)
	assert.Equal(t, "30", cases[1].OutputText)
	assert.Equal(t, 2, cases[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByProblemUnknownProblem(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.ListByProblem(context.Background(), 9)
	assert.ErrorIs(t, err, errs.ErrProblemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByProblemEmpty(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsQuery)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(casesQuery)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "input_text", "output_text", "is_sample", "order"}))

	cases, err := repo.ListByProblem(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, cases)
}
