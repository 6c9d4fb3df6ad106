package submissions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/ports/secondary"
	"gitlab.com/fcv-2025.net/codejudge/internal/core/services/judge"
	"gitlab.com/fcv-2025.net/codejudge/internal/domain"
	"gitlab.com/fcv-2025.net/codejudge/internal/handlers"
	"gitlab.com/fcv-2025.net/codejudge/internal/handlers/response"
)

// SubmissionHandler handles run/submit API requests
type SubmissionHandler struct {
	judgeService judge.IJudgeService
	summaries    secondary.SummaryStore
	logger       primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(judgeService judge.IJudgeService, summaries secondary.SummaryStore, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		judgeService: judgeService,
		summaries:    summaries,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler; submit and
// summary retrieval are wrapped with protect when it is not nil.
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}
	router.Handle("/api/submissions/submit", protect(http.HandlerFunc(h.Submit))).Methods("POST")
	router.HandleFunc("/api/submissions/run", h.Run).Methods("POST")
	router.Handle("/api/submissions/{submissionId}", protect(http.HandlerFunc(h.GetSubmission))).Methods("GET")
	router.HandleFunc("/api/languages", h.GetLanguages).Methods("GET")
}

type judgeFunc func(ctx context.Context, req domain.SubmissionRequest) (*domain.SubmissionSummary, error)

// Run judges the sample cases of a problem
func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.judge(w, r, h.judgeService.Run)
}

// Submit judges every case of a problem
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.judge(w, r, h.judgeService.Submit)
}

func (h *SubmissionHandler) judge(w http.ResponseWriter, r *http.Request, fn judgeFunc) {
	var req JudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}
	if msg := req.validate(); msg != "" {
		response.WriteError(w, response.ErrorMessage{Message: msg, StatusCode: http.StatusBadRequest})
		return
	}

	summary, err := fn(r.Context(), req.toDomain())
	if err != nil {
		h.logger.Error("Failed to judge submission",
			"problemId", req.ProblemID,
			"language", req.Language,
			"subject", handlers.SubjectFromContext(r.Context()),
			"error", err)
		response.WriteError(w, response.FromError(err))
		return
	}

	if err := h.summaries.Save(r.Context(), summary); err != nil {
		h.logger.Warn("Failed to keep submission summary", "submissionId", summary.ID, "error", err)
	}

	handlers.ResponseWithJson(w, http.StatusOK, summary)
}

// GetSubmission returns a recently judged submission
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["submissionId"]
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", idStr)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid submission ID", StatusCode: http.StatusBadRequest})
		return
	}

	summary, err := h.summaries.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get submission", "submissionId", id, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get submission", StatusCode: http.StatusInternalServerError})
		return
	}
	if summary == nil {
		response.WriteError(w, response.ErrorMessage{Message: "Submission not found", StatusCode: http.StatusNotFound})
		return
	}

	response.WriteSuccess(w, summary)
}

// GetLanguages lists the languages the backend can run
func (h *SubmissionHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.judgeService.Languages(r.Context())
	if err != nil {
		h.logger.Error("Failed to list languages", "error", err)
		response.WriteError(w, response.FromError(err))
		return
	}
	response.WriteSuccess(w, LanguagesResponse{Languages: languages})
}
