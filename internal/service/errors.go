package service

import (
	"errors"
	"fmt"

	"github.com/brewboard/api/internal/model"
)

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Validation Errors =====
var (
	ErrUnknownMetro        = errors.New("unknown metro")
	ErrMissingField        = errors.New("required field is empty")
	ErrMissingApplyContact = errors.New("an apply URL or apply email is required")
)

// ===== Checkout Errors =====
var (
	ErrCheckoutMisconfigured     = errors.New("payments endpoint is misconfigured")
	ErrCheckoutRejected          = errors.New("checkout was rejected")
	ErrCheckoutMalformedResponse = errors.New("checkout response is missing the redirect URL")
)

// ===== Pipeline Errors =====
var (
	ErrSubmissionNotFound        = errors.New("submission not found")
	ErrInvalidTransition         = errors.New("invalid lifecycle transition")
	ErrOrphanPaymentConfirmation = errors.New("payment confirmation for unknown submission")
	ErrMissingRejectionReason    = errors.New("rejection reason is required")
)

// MissingFieldError reports which required field was empty after trimming.
// It unwraps to ErrMissingField.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// InvalidTransitionError reports an attempted lifecycle transition that is
// not in the transition table, including one that lost a concurrent decision.
// It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	From model.LifecycleState
	To   model.LifecycleState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CheckoutRejectedError carries the payment collaborator's message, when it
// provided one. It unwraps to ErrCheckoutRejected.
type CheckoutRejectedError struct {
	Message string
}

func (e *CheckoutRejectedError) Error() string {
	if e.Message == "" {
		return "checkout failed, please try again"
	}
	return e.Message
}

func (e *CheckoutRejectedError) Unwrap() error {
	return ErrCheckoutRejected
}
