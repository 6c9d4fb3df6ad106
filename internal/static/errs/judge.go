package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNoTestCases     = errors.New("no test cases available")
	ErrProblemNotFound = errors.New("problem not found")
	ErrInvalidRequest  = errors.New("invalid request")
)

// UnsupportedLanguageError is returned when a language is still unknown after a fresh runtime fetch.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Language)
}

// BackendError reports a failed call to an execution backend.
// StatusCode is 0 for transport and decoding failures.
type BackendError struct {
	Backend    string
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Backend, e.Op, e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Backend, e.Op)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func IsUnsupportedLanguage(err error) bool {
	var target *UnsupportedLanguageError
	return errors.As(err, &target)
}

func IsBackendError(err error) bool {
	var target *BackendError
	return errors.As(err, &target)
}
