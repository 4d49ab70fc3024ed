package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brewboard/api/internal/model"
)

// SubmissionRepository defines the interface for submission data access.
//
// TransitionState must be a conditional write: the state change applies only
// if the stored lifecycle_state still equals from. This is the per-record
// serialization point for concurrent pipeline decisions; a false return with
// a nil error means another decision won.
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	ListByState(ctx context.Context, state model.LifecycleState, limit int) ([]*model.Submission, error)
	TransitionState(ctx context.Context, id string, from, to model.LifecycleState, stamps map[string]interface{}) (bool, error)

	// Publish atomically moves an approved submission to published and
	// creates its listing projection. Both writes succeed or neither does.
	Publish(ctx context.Context, submissionID string, listing *model.Listing) error
}

// SubmissionServiceConfig holds submission service dependencies
type SubmissionServiceConfig struct {
	SubmissionRepo SubmissionRepository
	Checkout       *CheckoutService
	Metros         *model.MetroDirectory
	EventHub       *EventHub
}

// SubmissionService accepts job drafts: it validates them, persists the
// submission as the source of truth, and initiates checkout against the
// payment collaborator.
type SubmissionService struct {
	submissionRepo SubmissionRepository
	checkout       *CheckoutService
	metros         *model.MetroDirectory
	eventHub       *EventHub
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(cfg SubmissionServiceConfig) *SubmissionService {
	return &SubmissionService{
		submissionRepo: cfg.SubmissionRepo,
		checkout:       cfg.Checkout,
		metros:         cfg.Metros,
		eventHub:       cfg.EventHub,
	}
}

// Submit validates a draft for a metro, stores it as a submitted Submission,
// and asks the payment collaborator for a checkout session. It returns the
// stored submission and the redirect URL the caller should navigate to.
//
// The submission is persisted before checkout is initiated, so a payment
// confirmation always has a record to land on. A failed checkout leaves the
// submission in submitted; retry is a fresh user-initiated call.
func (s *SubmissionService) Submit(ctx context.Context, metroSlug string, draft model.JobDraft) (*model.Submission, string, error) {
	normalized, metro, err := ValidateDraft(draft, s.metros, metroSlug)
	if err != nil {
		return nil, "", err
	}

	sub := &model.Submission{
		MetroSlug:       metro.Slug,
		City:            metro.City,
		State:           metro.State,
		NormalizedDraft: normalized,
		LifecycleState:  model.StateSubmitted,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.submissionRepo.Create(ctx, sub); err != nil {
		return nil, "", fmt.Errorf("failed to store submission: %w", err)
	}

	if s.eventHub != nil {
		s.eventHub.Publish(&Event{
			Type: EventSubmissionReceived,
			Data: map[string]interface{}{
				"submission_id": sub.ID,
				"metro_slug":    sub.MetroSlug,
				"cafe_name":     sub.CafeName,
			},
		})
	}

	checkoutURL, err := s.checkout.CreateSession(ctx, sub.ID, normalized, metro)
	if err != nil {
		slog.Warn("checkout initiation failed",
			slog.String("submission_id", sub.ID),
			slog.String("metro_slug", metro.Slug),
			slog.String("error", err.Error()),
		)
		return nil, "", err
	}

	return sub, checkoutURL, nil
}
