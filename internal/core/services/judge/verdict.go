package judge

import "gitlab.com/fcv-2025.net/codejudge/internal/domain"

// Summarize reduces case results to one verdict. The scan stops at the first
// time limit, compile, runtime or internal error; a wrong answer is recorded
// but scanning continues, so a later critical status still wins.
func Summarize(results []domain.CaseResult) domain.Summary {
	summary := domain.Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			summary.Passed++
		}
	}
	if len(results) == 0 {
		summary.Verdict = domain.VerdictNotApplicable
		return summary
	}

	summary.Verdict = domain.VerdictAccepted
	for _, r := range results {
		if v, critical := criticalVerdict(r.Class); critical {
			summary.Verdict = v
			break
		}
		if !r.Passed {
			summary.Verdict = domain.VerdictWrongAnswer
		}
	}
	return summary
}

func criticalVerdict(class domain.StatusClass) (domain.Verdict, bool) {
	switch class {
	case domain.StatusTimeLimitExceeded:
		return domain.VerdictTimeLimitExceeded, true
	case domain.StatusCompileError:
		return domain.VerdictCompileError, true
	case domain.StatusRuntimeError:
		return domain.VerdictRuntimeError, true
	case domain.StatusInternalError:
		return domain.VerdictInternalError, true
	}
	return "", false
}
