package model

import "time"

// LifecycleState tracks a submission through the moderation pipeline.
type LifecycleState string

const (
	StateSubmitted     LifecycleState = "submitted"
	StatePaid          LifecycleState = "paid"
	StatePendingReview LifecycleState = "pending_review"
	StateApproved      LifecycleState = "approved"
	StateRejected      LifecycleState = "rejected"
	StatePublished     LifecycleState = "published"
	StateRefunded      LifecycleState = "refunded"
)

// lifecycleTransitions is the complete transition table. Anything not listed
// here is invalid; there is no fallback.
var lifecycleTransitions = map[LifecycleState][]LifecycleState{
	StateSubmitted:     {StatePaid},
	StatePaid:          {StatePendingReview},
	StatePendingReview: {StateApproved, StateRejected},
	StateApproved:      {StatePublished},
	StateRejected:      {StateRefunded},
	StatePublished:     {},
	StateRefunded:      {},
}

// IsValidLifecycleState reports whether s is a known state.
func IsValidLifecycleState(s LifecycleState) bool {
	_, ok := lifecycleTransitions[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> to is in the table.
func (s LifecycleState) CanTransitionTo(to LifecycleState) bool {
	for _, next := range lifecycleTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s LifecycleState) IsTerminal() bool {
	next, ok := lifecycleTransitions[s]
	return ok && len(next) == 0
}

// JobDraft is user-entered posting data, exactly as submitted. Nothing here
// is trusted or trimmed yet.
type JobDraft struct {
	CafeName        string `json:"cafe_name"`
	Role            string `json:"role"`
	Pay             string `json:"pay"`
	Hours           string `json:"hours,omitempty"`
	Neighborhood    string `json:"neighborhood,omitempty"`
	ApplyURL        string `json:"apply_url,omitempty"`
	ApplyEmail      string `json:"apply_email,omitempty"`
	Description     string `json:"description,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	RequestedPinned bool   `json:"requested_pinned"`
}

// NormalizedDraft is a draft that passed validation. Required fields are
// trimmed and non-empty; optional fields are trimmed, with empty-after-trim
// values collapsed to nil so downstream code sees a clean absent/present
// distinction.
type NormalizedDraft struct {
	CafeName        string  `json:"cafe_name"`
	Role            string  `json:"role"`
	Pay             string  `json:"pay"`
	Hours           *string `json:"hours,omitempty"`
	Neighborhood    *string `json:"neighborhood,omitempty"`
	ApplyURL        *string `json:"apply_url,omitempty"`
	ApplyEmail      *string `json:"apply_email,omitempty"`
	Description     *string `json:"description,omitempty"`
	ContactEmail    *string `json:"contact_email,omitempty"`
	RequestedPinned bool    `json:"requested_pinned"`
}

// Submission is a validated draft bound to a metro and tracked through the
// moderation lifecycle. Submissions are never deleted; terminal states are
// kept for audit.
type Submission struct {
	ID        string `json:"id"`
	MetroSlug string `json:"metro_slug"`
	City      string `json:"city"`
	State     string `json:"state"`
	NormalizedDraft
	LifecycleState  LifecycleState `json:"lifecycle_state"`
	CreatedAt       time.Time      `json:"created_at"`
	PaidAt          *time.Time     `json:"paid_at,omitempty"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
}

// Listing is the published, publicly visible projection of an approved
// submission. Pinned=true with a nil PinnedUntil is an unbounded (legacy)
// pin; a set PinnedUntil expires exactly at that instant.
type Listing struct {
	ID           string     `json:"id"`
	MetroSlug    string     `json:"metro_slug"`
	CafeName     string     `json:"cafe_name"`
	Role         string     `json:"role"`
	Pay          string     `json:"pay"`
	Hours        *string    `json:"hours,omitempty"`
	Neighborhood *string    `json:"neighborhood,omitempty"`
	ApplyURL     *string    `json:"apply_url,omitempty"`
	ApplyEmail   *string    `json:"apply_email,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Pinned       bool       `json:"pinned"`
	PinnedUntil  *time.Time `json:"pinned_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PinGrant is the operator's decision on pinned placement when approving a
// submission. A nil *PinGrant means the listing publishes unpinned regardless
// of what the draft requested.
type PinGrant struct {
	Until *time.Time `json:"until,omitempty"`
}

// RejectSubmissionRequest is the operator's rejection decision.
type RejectSubmissionRequest struct {
	Reason string `json:"reason"`
}

// ApproveSubmissionRequest is the operator's approval decision.
type ApproveSubmissionRequest struct {
	GrantPin    bool       `json:"grant_pin"`
	PinnedUntil *time.Time `json:"pinned_until,omitempty"`
}

// PaymentConfirmation is the payment collaborator's callback payload.
type PaymentConfirmation struct {
	SubmissionID string `json:"submission_id"`
}
