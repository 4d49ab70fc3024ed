package handler

import (
	"errors"

	"github.com/brewboard/api/internal/model"
	"github.com/brewboard/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var missingField *service.MissingFieldError

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUnknownMetro):
		return model.NewNotFoundError("metro")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return model.NewNotFoundError("submission")
	case errors.Is(err, service.ErrOrphanPaymentConfirmation):
		// Surfaced, never swallowed: the collaborator sees its confirmation
		// had nothing to land on.
		return model.NewNotFoundError("submission")

	// ===== Validation Errors → 422 =====
	case errors.As(err, &missingField):
		return model.NewValidationError([]model.FieldError{{Field: missingField.Field, Message: "required field is empty"}})
	case errors.Is(err, service.ErrMissingApplyContact):
		return model.NewValidationError([]model.FieldError{{Field: "apply_url", Message: err.Error()}})
	case errors.Is(err, service.ErrMissingRejectionReason):
		return model.NewValidationError([]model.FieldError{{Field: "reason", Message: err.Error()}})

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrInvalidTransition):
		return model.NewConflictError(err.Error())

	// ===== Payment Collaborator Errors =====
	case errors.Is(err, service.ErrCheckoutMisconfigured):
		return model.NewInternalError("payments are not configured")
	case errors.Is(err, service.ErrCheckoutRejected),
		errors.Is(err, service.ErrCheckoutMalformedResponse):
		return model.NewExternalAPIError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails
// response with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
