// Package model defines domain entities and data structures for the board API.
//
// The model package contains all struct definitions for domain objects,
// request/response types, and error definitions. Models are used across all
// layers of the application.
//
// # Domain Entities
//
//   - Metro: a configured geographic market the board operates in
//   - JobDraft: user-entered posting data, untrusted and untrimmed
//   - NormalizedDraft: a draft that passed validation
//   - Submission: a validated draft tracked through the moderation lifecycle
//   - Listing: the published projection of an approved submission
//
// # Lifecycle
//
// Submissions move through an explicit state machine:
//
//	submitted -> paid -> pending_review -> approved -> published
//	                                    \> rejected -> refunded
//
// published and refunded are terminal. The table lives in job.go; any
// transition not in it fails closed.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
