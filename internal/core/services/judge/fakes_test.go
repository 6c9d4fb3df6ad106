package judge_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/runtimes"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

func str(s string) *string { return &s }

func num(n int) *int { return &n }

func id(n int64) *int64 { return &n }

// fakeBackend classifies like a Judge0 instance and answers from a function of stdin.
type fakeBackend struct {
	mu       sync.Mutex
	catalog  map[string]domain.BackendTarget
	exec     func(stdin string) (*domain.RawExecutionResult, error)
	executed []string
}

func newFakeBackend(exec func(stdin string) (*domain.RawExecutionResult, error)) *fakeBackend {
	return &fakeBackend{
		catalog: map[string]domain.BackendTarget{
			"python": {Kind: domain.BackendJudge0, LanguageID: 71, Name: "Python (3.8.1)"},
		},
		exec: exec,
	}
}

func (f *fakeBackend) Kind() domain.BackendKind { return domain.BackendJudge0 }

func (f *fakeBackend) ResolveRuntime(_ context.Context, language string) (domain.BackendTarget, error) {
	t, ok := f.catalog[runtimes.Key(language)]
	if !ok {
		return domain.BackendTarget{}, &errs.UnsupportedLanguageError{Language: language}
	}
	return t, nil
}

func (f *fakeBackend) RefreshRuntimes(context.Context) error { return nil }

func (f *fakeBackend) Runtimes(context.Context) (map[string]domain.BackendTarget, error) {
	return f.catalog, nil
}

func (f *fakeBackend) Execute(_ context.Context, _ domain.BackendTarget, req domain.ExecutionRequest) (*domain.RawExecutionResult, error) {
	f.mu.Lock()
	f.executed = append(f.executed, req.Stdin)
	f.mu.Unlock()
	return f.exec(req.Stdin)
}

func (f *fakeBackend) executions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.executed...)
}

func (f *fakeBackend) ClassifyStatus(raw *domain.RawExecutionResult) domain.StatusClass {
	if raw.StatusID == nil {
		return domain.StatusOther
	}
	switch *raw.StatusID {
	case 3:
		return domain.StatusAccepted
	case 5:
		return domain.StatusTimeLimitExceeded
	case 6:
		return domain.StatusCompileError
	case 11:
		return domain.StatusRuntimeError
	case 13:
		return domain.StatusInternalError
	}
	return domain.StatusOther
}

func accepted(stdout string) *domain.RawExecutionResult {
	return &domain.RawExecutionResult{Stdout: str(stdout), StatusID: num(3), StatusDescription: "Accepted"}
}

type recordingSink struct {
	mu        sync.Mutex
	cases     []int
	summaries []*domain.SubmissionSummary
}

func (s *recordingSink) CaseFinished(_ context.Context, _ uuid.UUID, index int, _ domain.CaseResult) {
	s.mu.Lock()
	s.cases = append(s.cases, index)
	s.mu.Unlock()
}

func (s *recordingSink) SubmissionFinished(_ context.Context, summary *domain.SubmissionSummary) {
	s.mu.Lock()
	s.summaries = append(s.summaries, summary)
	s.mu.Unlock()
}

type memoryTestCases map[int64][]domain.TestCase

func (m memoryTestCases) ListByProblem(_ context.Context, problemID int64) ([]domain.TestCase, error) {
	cases, ok := m[problemID]
	if !ok {
		return nil, errs.ErrProblemNotFound
	}
	return cases, nil
}
