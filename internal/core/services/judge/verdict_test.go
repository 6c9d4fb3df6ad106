package judge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

func pass() domain.CaseResult { return domain.CaseResult{Passed: true, Class: domain.StatusAccepted} }

func fail(class domain.StatusClass) domain.CaseResult {
	return domain.CaseResult{Passed: false, Class: class}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name    string
		results []domain.CaseResult
		want    domain.Summary
	}{
		{"empty", nil, domain.Summary{Verdict: domain.VerdictNotApplicable}},
		{"all pass", []domain.CaseResult{pass(), pass()}, domain.Summary{Verdict: domain.VerdictAccepted, Passed: 2, Total: 2}},
		{
			"wrong answer keeps scanning into compile error",
			[]domain.CaseResult{pass(), fail(domain.StatusOther), fail(domain.StatusCompileError)},
			domain.Summary{Verdict: domain.VerdictCompileError, Passed: 1, Total: 3},
		},
		{
			"time limit stops the scan",
			[]domain.CaseResult{fail(domain.StatusTimeLimitExceeded), fail(domain.StatusOther)},
			domain.Summary{Verdict: domain.VerdictTimeLimitExceeded, Passed: 0, Total: 2},
		},
		{
			"accepted status with wrong output",
			[]domain.CaseResult{pass(), fail(domain.StatusAccepted)},
			domain.Summary{Verdict: domain.VerdictWrongAnswer, Passed: 1, Total: 2},
		},
		{
			"runtime error after wrong answer",
			[]domain.CaseResult{fail(domain.StatusOther), fail(domain.StatusRuntimeError), fail(domain.StatusTimeLimitExceeded)},
			domain.Summary{Verdict: domain.VerdictRuntimeError, Passed: 0, Total: 3},
		},
		{
			"missing status is internal error",
			[]domain.CaseResult{fail(domain.StatusInternalError)},
			domain.Summary{Verdict: domain.VerdictInternalError, Passed: 0, Total: 1},
		},
		{
			"passed case with time limit status",
			[]domain.CaseResult{{Passed: true, Class: domain.StatusTimeLimitExceeded}},
			domain.Summary{Verdict: domain.VerdictTimeLimitExceeded, Passed: 1, Total: 1},
		},
		{
			"later compile error overrides earlier wrong answer",
			[]domain.CaseResult{fail(domain.StatusOther), {Passed: true, Class: domain.StatusCompileError}},
			domain.Summary{Verdict: domain.VerdictCompileError, Passed: 1, Total: 2},
		},
		{
			"counts are independent of the verdict",
			[]domain.CaseResult{fail(domain.StatusCompileError), pass(), pass()},
			domain.Summary{Verdict: domain.VerdictCompileError, Passed: 2, Total: 3},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, judge.Summarize(tc.results))
		})
	}
}
