package submissions

import (
	"strings"

	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
)

// JudgeRequest is the body of run and submit requests.
type JudgeRequest struct {
	ProblemID int64  `json:"problem_id"`
	Language  string `json:"language"`
	Code      string `json:"code"`
}

func (r JudgeRequest) validate() string {
	switch {
	case r.ProblemID <= 0:
		return "problem_id is required"
	case strings.TrimSpace(r.Language) == "":
		return "language is required"
	case r.Code == "":
		return "code is required"
	}
	return ""
}

func (r JudgeRequest) toDomain() domain.SubmissionRequest {
	return domain.SubmissionRequest{
		ProblemID: r.ProblemID,
		Language:  r.Language,
		Code:      r.Code,
	}
}

// LanguagesResponse lists the resolvable language names.
type LanguagesResponse struct {
	Languages map[string]domain.BackendTarget `json:"languages"`
}
