package judge_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fcv-2025.net/codejudge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

func numberedCases(n int) []domain.TestCase {
	cases := make([]domain.TestCase, n)
	for i := range cases {
		cases[i] = domain.TestCase{ID: id(int64(i + 1)), InputText: strconv.Itoa(i), OutputText: strconv.Itoa(i), Order: i}
	}
	return cases
}

func TestRunnerComparesNormalizedOutput(t *testing.T) {
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		return accepted("3\r\n"), nil
	})
	runner := judge.NewRunner(backend, &recordingSink{}, logging.NewNopLogger(), judge.RunnerOptions{})

	results, err := runner.Run(context.Background(), uuid.New(), "python", "print(3)", []domain.TestCase{
		{InputText: "1 2", OutputText: "3"},
		{InputText: "2 2", OutputText: "4"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Equal(t, domain.StatusAccepted, results[1].Class)
}

func TestRunnerNonAcceptedNeverPasses(t *testing.T) {
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		return &domain.RawExecutionResult{Stdout: str("3"), StatusID: num(11), StatusDescription: "Runtime Error (NZEC)"}, nil
	})
	runner := judge.NewRunner(backend, &recordingSink{}, logging.NewNopLogger(), judge.RunnerOptions{})

	results, err := runner.Run(context.Background(), uuid.New(), "python", "", []domain.TestCase{{OutputText: "3"}})
	require.NoError(t, err)
	assert.False(t, results[0].Passed)
	assert.Equal(t, domain.StatusRuntimeError, results[0].Class)
}

func TestRunnerUnsupportedLanguageFailsBeforeExecution(t *testing.T) {
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		return accepted(""), nil
	})
	runner := judge.NewRunner(backend, &recordingSink{}, logging.NewNopLogger(), judge.RunnerOptions{})

	_, err := runner.Run(context.Background(), uuid.New(), "brainfuck", "", numberedCases(3))
	assert.True(t, errs.IsUnsupportedLanguage(err))
	assert.Empty(t, backend.executions())
}

func TestRunnerBackendErrorAbortsByDefault(t *testing.T) {
	backendErr := &errs.BackendError{Backend: "judge0", Op: "submissions", StatusCode: 500, Body: "boom"}
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		if stdin == "1" {
			return nil, backendErr
		}
		return accepted(stdin), nil
	})
	runner := judge.NewRunner(backend, &recordingSink{}, logging.NewNopLogger(), judge.RunnerOptions{})

	_, err := runner.Run(context.Background(), uuid.New(), "python", "", numberedCases(4))
	require.Error(t, err)
	var be *errs.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 500, be.StatusCode)
	assert.Equal(t, []string{"0", "1"}, backend.executions())
}

func TestRunnerIsolatesCaseErrorsWhenConfigured(t *testing.T) {
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		if stdin == "1" {
			return nil, &errs.BackendError{Backend: "judge0", Op: "submissions", Err: fmt.Errorf("connection reset")}
		}
		return accepted(stdin), nil
	})
	runner := judge.NewRunner(backend, &recordingSink{}, logging.NewNopLogger(), judge.RunnerOptions{IsolateCaseErrors: true})

	results, err := runner.Run(context.Background(), uuid.New(), "python", "", numberedCases(3))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Passed)
	assert.Equal(t, domain.StatusInternalError, results[1].Class)
	assert.False(t, results[1].Passed)
	assert.True(t, results[2].Passed)
	assert.Equal(t, domain.VerdictInternalError, judge.Summarize(results).Verdict)
}

func TestRunnerParallelPreservesInputOrder(t *testing.T) {
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		n, _ := strconv.Atoi(stdin)
		// later cases finish first
		time.Sleep(time.Duration(10-n) * 5 * time.Millisecond)
		return accepted(stdin), nil
	})
	sink := &recordingSink{}
	runner := judge.NewRunner(backend, sink, logging.NewNopLogger(), judge.RunnerOptions{Parallelism: 4})

	cases := numberedCases(10)
	results, err := runner.Run(context.Background(), uuid.New(), "python", "", cases)
	require.NoError(t, err)
	require.Len(t, results, len(cases))
	for i, r := range results {
		assert.Equal(t, cases[i].ID, r.ID)
		assert.Equal(t, strconv.Itoa(i), *r.Stdout)
		assert.True(t, r.Passed)
	}
	assert.Len(t, sink.cases, len(cases))
}

func TestRunnerParallelPropagatesError(t *testing.T) {
	backend := newFakeBackend(func(stdin string) (*domain.RawExecutionResult, error) {
		if stdin == "5" {
			return nil, &errs.BackendError{Backend: "judge0", Op: "submissions", StatusCode: 502}
		}
		return accepted(stdin), nil
	})
	runner := judge.NewRunner(backend, &recordingSink{}, logging.NewNopLogger(), judge.RunnerOptions{Parallelism: 3})

	_, err := runner.Run(context.Background(), uuid.New(), "python", "", numberedCases(8))
	assert.True(t, errs.IsBackendError(err))
}
