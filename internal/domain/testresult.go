package domain

import "github.com/google/uuid"

type Verdict string

const (
	VerdictAccepted          Verdict = "AC"
	VerdictWrongAnswer       Verdict = "WA"
	VerdictTimeLimitExceeded Verdict = "TLE"
	VerdictCompileError      Verdict = "CE"
	VerdictRuntimeError      Verdict = "RE"
	VerdictInternalError     Verdict = "IE"
	VerdictNotApplicable     Verdict = "NA"
)

// CaseResult is the outcome of one test case.
type CaseResult struct {
	ID            *int64      `json:"id"`
	IsSample      bool        `json:"is_sample"`
	InputText     string      `json:"-"`
	OutputText    string      `json:"-"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Status        string      `json:"status"`
	StatusID      *int        `json:"status_id"`
	Class         StatusClass `json:"class"`
	Passed        bool        `json:"passed"`
	Time          *string     `json:"time"`
	Memory        *int64      `json:"memory"`
}

// Summary is the reduced verdict of a batch of case results.
type Summary struct {
	Verdict Verdict `json:"verdict"`
	Passed  int     `json:"passed"`
	Total   int     `json:"total"`
}

// CaseView is the caller-facing shape of a case; I/O is only set for visible cases.
type CaseView struct {
	ID            *int64  `json:"id"`
	IsSample      bool    `json:"is_sample"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Status        string  `json:"status"`
	Time          *string `json:"time"`
	Memory        *int64  `json:"memory"`
	Passed        bool    `json:"passed"`
	InputText     *string `json:"input_text,omitempty"`
	OutputText    *string `json:"output_text,omitempty"`
}

// HiddenSummary aggregates non-sample cases without exposing them.
type HiddenSummary struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

// SubmissionSummary is the full answer to a run or submit.
type SubmissionSummary struct {
	ID       uuid.UUID      `json:"submission_id"`
	Mode     Mode           `json:"mode"`
	Language string         `json:"language"`
	Verdict  Verdict        `json:"verdict"`
	Passed   int            `json:"passed"`
	Total    int            `json:"total"`
	Cases    []CaseView     `json:"cases"`
	Hidden   *HiddenSummary `json:"hidden"`
}

// NewCaseView copies a result into its caller-facing shape, with I/O when withIO is set.
func NewCaseView(r CaseResult, withIO bool) CaseView {
	v := CaseView{
		ID:            r.ID,
		IsSample:      r.IsSample,
		Stdout:        r.Stdout,
		Stderr:        r.Stderr,
		CompileOutput: r.CompileOutput,
		Status:        r.Status,
		Time:          r.Time,
		Memory:        r.Memory,
		Passed:        r.Passed,
	}
	if withIO {
		in, out := r.InputText, r.OutputText
		v.InputText = &in
		v.OutputText = &out
	}
	return v
}
