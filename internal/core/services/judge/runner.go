package judge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/normalize"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

type RunnerOptions struct {
	// Parallelism caps concurrent executions; 1 or less runs cases one by one.
	Parallelism int
	// IsolateCaseErrors records a failed backend call as an internal error
	// case instead of aborting the batch.
	IsolateCaseErrors bool
	Limits            domain.Limits
}

// Runner executes a program against test cases on one backend.
type Runner struct {
	backend secondary.Backend
	sink    secondary.ResultSink
	logger  primary.Logger
	opts    RunnerOptions
}

func NewRunner(backend secondary.Backend, sink secondary.ResultSink, logger primary.Logger, opts RunnerOptions) *Runner {
	return &Runner{
		backend: backend,
		sink:    sink,
		logger:  logger,
		opts:    opts,
	}
}

// Run returns one result per case in input order. The language is resolved
// before anything executes.
func (r *Runner) Run(ctx context.Context, submissionID uuid.UUID, language, code string, cases []domain.TestCase) ([]domain.CaseResult, error) {
	target, err := r.backend.ResolveRuntime(ctx, language)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("running test cases",
		"submissionId", submissionID,
		"target", target.String(),
		"cases", len(cases))

	results := make([]domain.CaseResult, len(cases))

	if r.opts.Parallelism <= 1 {
		for i, tc := range cases {
			res, err := r.runCase(ctx, submissionID, i, target, code, tc)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallelism)
	for i, tc := range cases {
		g.Go(func() error {
			res, err := r.runCase(gctx, submissionID, i, target, code, tc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runCase(ctx context.Context, submissionID uuid.UUID, index int, target domain.BackendTarget, code string, tc domain.TestCase) (domain.CaseResult, error) {
	raw, err := r.backend.Execute(ctx, target, domain.ExecutionRequest{
		Language:   target.Language,
		SourceCode: code,
		Stdin:      tc.InputText,
		Limits:     r.opts.Limits,
	})
	if err != nil {
		if !r.opts.IsolateCaseErrors {
			return domain.CaseResult{}, fmt.Errorf("case %d: %w", index, err)
		}
		r.logger.Warn("case execution failed, recording internal error",
			"submissionId", submissionID, "case", index, "error", err)
		res := failedCase(tc, err)
		r.sink.CaseFinished(ctx, submissionID, index, res)
		return res, nil
	}

	class := r.backend.ClassifyStatus(raw)
	res := domain.CaseResult{
		ID:            tc.ID,
		IsSample:      tc.IsSample,
		InputText:     tc.InputText,
		OutputText:    tc.OutputText,
		Stdout:        raw.Stdout,
		Stderr:        raw.Stderr,
		CompileOutput: raw.CompileOutput,
		Status:        raw.StatusDescription,
		StatusID:      raw.StatusID,
		Class:         class,
		Passed:        class == domain.StatusAccepted && normalize.Equal(raw.Stdout, tc.OutputText),
		Time:          raw.Time,
		Memory:        raw.Memory,
	}
	r.sink.CaseFinished(ctx, submissionID, index, res)
	return res, nil
}

func failedCase(tc domain.TestCase, err error) domain.CaseResult {
	msg := err.Error()
	return domain.CaseResult{
		ID:         tc.ID,
		IsSample:   tc.IsSample,
		InputText:  tc.InputText,
		OutputText: tc.OutputText,
		Stderr:     &msg,
		Status:     "Internal Error",
		Class:      domain.StatusInternalError,
	}
}
