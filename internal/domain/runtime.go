package domain

import "fmt"

type BackendKind string

const (
	BackendJudge0 BackendKind = "judge0"
	BackendPiston BackendKind = "piston"
)

// BackendTarget identifies a concrete runtime on an execution backend.
// Judge0 targets carry LanguageID, Piston targets carry Language and Version.
type BackendTarget struct {
	Kind       BackendKind `json:"backend"`
	LanguageID int         `json:"language_id,omitempty"`
	Language   string      `json:"language,omitempty"`
	Version    string      `json:"version,omitempty"`
	Name       string      `json:"name,omitempty"`
}

func (t BackendTarget) String() string {
	if t.Kind == BackendJudge0 {
		return fmt.Sprintf("%s#%d(%s)", t.Kind, t.LanguageID, t.Name)
	}
	return fmt.Sprintf("%s:%s@%s", t.Kind, t.Language, t.Version)
}

// StatusClass is the backend-independent classification of one execution.
type StatusClass string

const (
	StatusAccepted          StatusClass = "accepted"
	StatusTimeLimitExceeded StatusClass = "time_limit_exceeded"
	StatusCompileError      StatusClass = "compile_error"
	StatusRuntimeError      StatusClass = "runtime_error"
	StatusInternalError     StatusClass = "internal_error"
	// StatusOther covers wrong answer, queued and any code the backend does not map.
	StatusOther StatusClass = "other"
)

// RawExecutionResult is what a backend returned for one execution.
type RawExecutionResult struct {
	Stdout            *string
	Stderr            *string
	CompileOutput     *string
	StatusID          *int
	StatusDescription string
	ExitCode          *int
	Signal            *string
	Time              *string
	Memory            *int64
}
