package domain

// Mode selects which test cases are judged and how much of them is shown.
type Mode string

const (
	// ModeRun judges sample cases only and shows all of them.
	ModeRun Mode = "run"
	// ModeSubmit judges every case and only shows sample detail.
	ModeSubmit Mode = "submit"
)

func (m Mode) Valid() bool {
	return m == ModeRun || m == ModeSubmit
}

// SubmissionRequest is what a caller sends to have code judged against a problem.
type SubmissionRequest struct {
	ProblemID int64  `json:"problem_id"`
	Language  string `json:"language"`
	Code      string `json:"code"`
}

// Limits are optional resource limits forwarded to backends that support them.
type Limits struct {
	CPUTimeLimit *float64 `json:"cpu_time_limit,omitempty"`
	MemoryLimit  *int64   `json:"memory_limit,omitempty"`
}

// ExecutionRequest is one program execution with a single stdin.
type ExecutionRequest struct {
	Language   string
	SourceCode string
	Stdin      string
	Limits     Limits
}
