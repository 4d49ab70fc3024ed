package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/brewboard/api/internal/model"
)

// PaymentConfirmer defines the interface for applying collaborator callbacks
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, id string) (*model.Submission, error)
}

// PaymentHandler handles payment collaborator callbacks.
//
// The paid=1 hint a browser carries back from checkout never reaches this
// handler; only the collaborator's server-side confirmation moves a
// submission out of submitted.
type PaymentHandler struct {
	payments PaymentConfirmer
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments PaymentConfirmer) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
	}
}

// RegisterRoutes registers payment callback routes
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/payments/confirmations", h.Confirm)
}

// Confirm applies a payment confirmation to its submission
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentConfirmation
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.SubmissionID) == "" {
		WriteError(w, model.NewBadRequestError("submission_id required"))
		return
	}

	sub, err := h.payments.ConfirmPayment(r.Context(), req.SubmissionID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, sub, nil)
}
