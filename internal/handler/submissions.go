package handler

import (
	"context"
	"net/http"

	"github.com/brewboard/api/internal/model"
)

// SubmissionSubmitter defines the interface for accepting job drafts
type SubmissionSubmitter interface {
	Submit(ctx context.Context, metroSlug string, draft model.JobDraft) (*model.Submission, string, error)
}

// SubmissionHandler handles job submission HTTP requests
type SubmissionHandler struct {
	submissions SubmissionSubmitter
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissions SubmissionSubmitter) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
	}
}

// RegisterRoutes registers submission routes
func (h *SubmissionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/metros/{metro}/submissions", h.Create)
}

// SubmitResponse is the payload returned for an accepted submission
type SubmitResponse struct {
	Submission  *model.Submission `json:"submission"`
	CheckoutURL string            `json:"checkout_url"`
}

// Create validates a draft, stores it, and initiates checkout. The caller is
// expected to redirect the submitter to the returned checkout URL.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	metroSlug := r.PathValue("metro")
	if metroSlug == "" {
		WriteError(w, model.NewBadRequestError("metro slug required"))
		return
	}

	var draft model.JobDraft
	if err := DecodeJSON(r, &draft); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	sub, checkoutURL, err := h.submissions.Submit(r.Context(), metroSlug, draft)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, SubmitResponse{
		Submission:  sub,
		CheckoutURL: checkoutURL,
	}, map[string]string{
		"self": "/v1/submissions/" + sub.ID,
	})
}
