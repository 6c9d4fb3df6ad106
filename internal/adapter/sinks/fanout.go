// Package sinks combines result observers.
package sinks

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

var (
	_ secondary.ResultSink = Nop{}
	_ secondary.ResultSink = Fanout(nil)
)

// Nop ignores every event.
type Nop struct{}

func (Nop) CaseFinished(context.Context, uuid.UUID, int, domain.CaseResult) {}

func (Nop) SubmissionFinished(context.Context, *domain.SubmissionSummary) {}

// Fanout forwards every event to each sink in order.
type Fanout []secondary.ResultSink

func New(sinks ...secondary.ResultSink) secondary.ResultSink {
	var out Fanout
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return Nop{}
	}
	return out
}

func (f Fanout) CaseFinished(ctx context.Context, submissionID uuid.UUID, index int, result domain.CaseResult) {
	for _, s := range f {
		s.CaseFinished(ctx, submissionID, index, result)
	}
}

func (f Fanout) SubmissionFinished(ctx context.Context, summary *domain.SubmissionSummary) {
	for _, s := range f {
		s.SubmissionFinished(ctx, summary)
	}
}
