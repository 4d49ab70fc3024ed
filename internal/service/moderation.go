package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brewboard/api/internal/model"
)

// ModerationService drives a submission through the lifecycle state machine:
//
//	submitted -> paid -> pending_review -> approved -> published
//	                                    \> rejected -> refunded
//
// Transitions are driven by external events (payment confirmation callbacks,
// operator decisions) arriving in any order. Per-submission serialization is
// delegated to the repository's conditional state update: of two concurrent
// decisions on one submission, exactly one applies and the loser gets an
// InvalidTransitionError.
type ModerationService struct {
	submissionRepo SubmissionRepository
	eventHub       *EventHub
}

// NewModerationService creates a new moderation service
func NewModerationService(submissionRepo SubmissionRepository, eventHub *EventHub) *ModerationService {
	return &ModerationService{
		submissionRepo: submissionRepo,
		eventHub:       eventHub,
	}
}

// GetSubmission retrieves a submission by ID
func (s *ModerationService) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}
	return sub, nil
}

// PendingQueue retrieves submissions awaiting an operator decision
func (s *ModerationService) PendingQueue(ctx context.Context, limit int) ([]*model.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.submissionRepo.ListByState(ctx, model.StatePendingReview, limit)
}

// ConfirmPayment applies a confirmed payment-collaborator callback: the
// submission moves submitted -> paid (stamping paid_at) and immediately
// advances to pending_review, the queue an operator examines.
//
// A confirmation for an id that was never stored is reported as
// ErrOrphanPaymentConfirmation, never silently dropped. The paid=1 display
// hint on the listing page has no path into this method; only the
// collaborator callback does.
func (s *ModerationService) ConfirmPayment(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrphanPaymentConfirmation, id)
	}

	now := time.Now().UTC()
	if err := s.transition(ctx, sub, model.StatePaid, map[string]interface{}{"paid_at": now}); err != nil {
		return nil, err
	}
	if err := s.transition(ctx, sub, model.StatePendingReview, nil); err != nil {
		return nil, err
	}

	if s.eventHub != nil {
		s.eventHub.Publish(&Event{
			Type: EventSubmissionPaid,
			Data: map[string]interface{}{
				"submission_id": sub.ID,
				"metro_slug":    sub.MetroSlug,
			},
		})
	}

	return s.GetSubmission(ctx, id)
}

// Approve applies an operator approval: reviewed_at is stamped at the moment
// of decision, then the listing projection is created and the submission
// published in one atomic write pair.
//
// A submission found already in approved is a previous approval whose publish
// write failed; re-approving retries the publish pair instead of failing the
// state check, so the operator is never stranded.
//
// Pinned placement is the operator's grant, not the submitter's request: the
// listing is pinned only when req.GrantPin is set, bounded by req.PinnedUntil
// when present.
func (s *ModerationService) Approve(ctx context.Context, id string, req model.ApproveSubmissionRequest) (*model.Listing, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	now := time.Now().UTC()
	if sub.LifecycleState != model.StateApproved {
		if err := s.transition(ctx, sub, model.StateApproved, map[string]interface{}{"reviewed_at": now}); err != nil {
			return nil, err
		}
	}

	listing := &model.Listing{
		MetroSlug:    sub.MetroSlug,
		CafeName:     sub.CafeName,
		Role:         sub.Role,
		Pay:          sub.Pay,
		Hours:        sub.Hours,
		Neighborhood: sub.Neighborhood,
		ApplyURL:     sub.ApplyURL,
		ApplyEmail:   sub.ApplyEmail,
		Description:  sub.Description,
		Pinned:       req.GrantPin,
		CreatedAt:    now,
	}
	if req.GrantPin {
		listing.PinnedUntil = req.PinnedUntil
	}

	if err := s.submissionRepo.Publish(ctx, sub.ID, listing); err != nil {
		return nil, fmt.Errorf("failed to publish submission: %w", err)
	}

	if s.eventHub != nil {
		s.eventHub.Publish(&Event{
			Type: EventSubmissionApproved,
			Data: map[string]interface{}{
				"submission_id": sub.ID,
				"listing_id":    listing.ID,
				"metro_slug":    sub.MetroSlug,
				"pinned":        listing.Pinned,
			},
		})
	}

	return listing, nil
}

// Reject applies an operator rejection. The reason is mandatory; an empty
// reason leaves the submission untouched in pending_review. Rejection of a
// paid submission creates a refund obligation, signaled on the event stream
// and executed by the payment collaborator; the submission reaches refunded
// only through ConfirmRefund.
func (s *ModerationService) Reject(ctx context.Context, id, reason string) (*model.Submission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrMissingRejectionReason
	}

	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	now := time.Now().UTC()
	stamps := map[string]interface{}{
		"reviewed_at":      now,
		"rejection_reason": reason,
	}
	if err := s.transition(ctx, sub, model.StateRejected, stamps); err != nil {
		return nil, err
	}

	if s.eventHub != nil {
		s.eventHub.Publish(&Event{
			Type: EventSubmissionRejected,
			Data: map[string]interface{}{
				"submission_id": sub.ID,
				"metro_slug":    sub.MetroSlug,
				"reason":        reason,
				"refund_due":    true,
			},
		})
	}

	return s.GetSubmission(ctx, id)
}

// ConfirmRefund records the collaborator's refund confirmation, moving the
// submission to its terminal refunded state.
func (s *ModerationService) ConfirmRefund(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	if err := s.transition(ctx, sub, model.StateRefunded, nil); err != nil {
		return nil, err
	}

	if s.eventHub != nil {
		s.eventHub.Publish(&Event{
			Type: EventSubmissionRefunded,
			Data: map[string]interface{}{
				"submission_id": sub.ID,
				"metro_slug":    sub.MetroSlug,
			},
		})
	}

	return s.GetSubmission(ctx, id)
}

// transition moves sub to the next state, first against the transition table
// and then against the store's conditional update. After a successful write
// sub carries the new state, so calls can be chained for auto-advances.
func (s *ModerationService) transition(ctx context.Context, sub *model.Submission, to model.LifecycleState, stamps map[string]interface{}) error {
	from := sub.LifecycleState
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{From: from, To: to}
	}

	applied, err := s.submissionRepo.TransitionState(ctx, sub.ID, from, to, stamps)
	if err != nil {
		return fmt.Errorf("failed to transition submission %s: %w", sub.ID, err)
	}
	if !applied {
		// A concurrent decision won; report the state it left behind.
		current, err := s.submissionRepo.GetByID(ctx, sub.ID)
		if err == nil && current != nil {
			from = current.LifecycleState
		}
		return &InvalidTransitionError{From: from, To: to}
	}

	sub.LifecycleState = to
	return nil
}
