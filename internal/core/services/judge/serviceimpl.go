package judge

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

type JudgeService struct {
	backend   secondary.Backend
	testCases secondary.TestCaseRepository
	sink      secondary.ResultSink
	runner    *Runner
	logger    primary.Logger
	newID     func() uuid.UUID
}

func NewJudgeService(
	backend secondary.Backend,
	testCases secondary.TestCaseRepository,
	sink secondary.ResultSink,
	logger primary.Logger,
	opts RunnerOptions,
) *JudgeService {
	return &JudgeService{
		backend:   backend,
		testCases: testCases,
		sink:      sink,
		runner:    NewRunner(backend, sink, logger, opts),
		logger:    logger,
		newID:     uuid.New,
	}
}

func (s *JudgeService) Run(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionSummary, error) {
	return s.judgeProblem(ctx, domain.ModeRun, req)
}

func (s *JudgeService) Submit(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionSummary, error) {
	return s.judgeProblem(ctx, domain.ModeSubmit, req)
}

func (s *JudgeService) judgeProblem(ctx context.Context, mode domain.Mode, req domain.SubmissionRequest) (*domain.SubmissionSummary, error) {
	cases, err := s.testCases.ListByProblem(ctx, req.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("load test cases of problem %d: %w", req.ProblemID, err)
	}
	return s.Evaluate(ctx, mode, req.Language, req.Code, cases)
}

func (s *JudgeService) Evaluate(ctx context.Context, mode domain.Mode, language, code string, cases []domain.TestCase) (*domain.SubmissionSummary, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", errs.ErrInvalidRequest, mode)
	}

	selected := selectCases(mode, cases)
	if len(selected) == 0 {
		return nil, errs.ErrNoTestCases
	}

	id := s.newID()
	s.logger.Info("judging submission",
		"submissionId", id,
		"mode", mode,
		"language", language,
		"cases", len(selected))

	results, err := s.runner.Run(ctx, id, language, code, selected)
	if err != nil {
		s.logger.Error("judging failed", "submissionId", id, "error", err)
		return nil, err
	}

	summary := buildSummary(id, mode, language, results)
	s.logger.Info("submission judged",
		"submissionId", id,
		"verdict", summary.Verdict,
		"passed", summary.Passed,
		"total", summary.Total)
	s.sink.SubmissionFinished(ctx, summary)
	return summary, nil
}

func (s *JudgeService) Languages(ctx context.Context) (map[string]domain.BackendTarget, error) {
	return s.backend.Runtimes(ctx)
}

// selectCases keeps the cases judged in a mode, stably sorted by Order.
func selectCases(mode domain.Mode, cases []domain.TestCase) []domain.TestCase {
	out := make([]domain.TestCase, 0, len(cases))
	for _, tc := range cases {
		if mode == domain.ModeRun && !tc.IsSample {
			continue
		}
		out = append(out, tc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func buildSummary(id uuid.UUID, mode domain.Mode, language string, results []domain.CaseResult) *domain.SubmissionSummary {
	reduced := Summarize(results)
	summary := &domain.SubmissionSummary{
		ID:       id,
		Mode:     mode,
		Language: language,
		Verdict:  reduced.Verdict,
		Passed:   reduced.Passed,
		Total:    reduced.Total,
		Cases:    make([]domain.CaseView, 0, len(results)),
	}

	if mode == domain.ModeRun {
		for _, r := range results {
			summary.Cases = append(summary.Cases, domain.NewCaseView(r, true))
		}
		return summary
	}

	hidden := &domain.HiddenSummary{}
	for _, r := range results {
		if r.IsSample {
			summary.Cases = append(summary.Cases, domain.NewCaseView(r, true))
			continue
		}
		hidden.Total++
		if r.Passed {
			hidden.Passed++
		}
	}
	summary.Hidden = hidden
	return summary
}
