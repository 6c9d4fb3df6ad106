package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/fcv-2025.net/codejudge/internal/static/errs"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&errs.UnsupportedLanguageError{Language: "ruby"}, http.StatusBadRequest},
		{fmt.Errorf("judge: %w", errs.ErrNoTestCases), http.StatusBadRequest},
		{fmt.Errorf("load: %w", errs.ErrProblemNotFound), http.StatusNotFound},
		{&errs.BackendError{Backend: "piston", Op: "execute", StatusCode: 500, Body: "x"}, http.StatusBadGateway},
		{errors.New("surprise"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, FromError(tc.err).StatusCode, tc.err.Error())
	}
}

func TestWriteError(t *testing.T) {
	rw := httptest.NewRecorder()
	WriteError(rw, ErrorMessage{Message: "nope", StatusCode: http.StatusNotFound})
	assert.Equal(t, http.StatusNotFound, rw.Code)
	assert.JSONEq(t, `{"message":"nope","status_code":404}`, rw.Body.String())
}
