package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/brewboard/api/internal/model"
)

// ModerationDecider defines the interface for operator decisions on the queue
type ModerationDecider interface {
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	PendingQueue(ctx context.Context, limit int) ([]*model.Submission, error)
	Approve(ctx context.Context, id string, req model.ApproveSubmissionRequest) (*model.Listing, error)
	Reject(ctx context.Context, id, reason string) (*model.Submission, error)
	ConfirmRefund(ctx context.Context, id string) (*model.Submission, error)
}

// ModerationHandler handles moderation HTTP requests. All of its routes sit
// behind the operator token middleware.
type ModerationHandler struct {
	moderation ModerationDecider
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderation ModerationDecider) *ModerationHandler {
	return &ModerationHandler{
		moderation: moderation,
	}
}

// Queue returns submissions awaiting an operator decision
func (h *ModerationHandler) Queue(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			WriteError(w, model.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	queue, err := h.moderation.PendingQueue(r.Context(), limit)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, queue, nil)
}

// GetSubmission retrieves a submission with its lifecycle state
func (h *ModerationHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	sub, err := h.moderation.GetSubmission(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sub, nil)
}

// Approve publishes a submission. The body is optional; when present it may
// grant pinned placement.
func (h *ModerationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	var req model.ApproveSubmissionRequest
	if err := DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	listing, err := h.moderation.Approve(r.Context(), id, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, listing, map[string]string{
		"listings": "/v1/metros/" + listing.MetroSlug + "/listings",
	})
}

// Reject declines a submission with a mandatory reason
func (h *ModerationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	var req model.RejectSubmissionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	sub, err := h.moderation.Reject(r.Context(), id, req.Reason)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sub, nil)
}

// ConfirmRefund records the collaborator's refund confirmation for a rejected
// submission
func (h *ModerationHandler) ConfirmRefund(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	sub, err := h.moderation.ConfirmRefund(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sub, nil)
}
