package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// FromError maps a judging error onto the status code a caller should see.
// Anything unrecognised is reported as a gateway failure.
func FromError(err error) ErrorMessage {
	var unsupported *errs.UnsupportedLanguageError
	switch {
	case errors.As(err, &unsupported):
		return ErrorMessage{Message: unsupported.Error(), StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.ErrNoTestCases), errors.Is(err, errs.ErrInvalidRequest):
		return ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest}
	case errors.Is(err, errs.ErrProblemNotFound):
		return ErrorMessage{Message: errs.ErrProblemNotFound.Error(), StatusCode: http.StatusNotFound}
	case errs.IsBackendError(err):
		return ErrorMessage{Message: "execution service error: " + err.Error(), StatusCode: http.StatusBadGateway}
	default:
		return ErrorMessage{Message: "execution service error: " + err.Error(), StatusCode: http.StatusBadGateway}
	}
}
