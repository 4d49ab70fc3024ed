// Package service implements the business logic layer for the board API.
//
// The service package contains the listing lifecycle and ranking engine:
// draft validation, checkout initiation, the moderation state machine, pin
// scheduling, and listing ranking. Services are the primary abstraction
// between HTTP handlers and data access.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Errors are returned as sentinel errors or wrapped errors for context
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// # Pure Core
//
// ValidateDraft, PinnedNow and RankListings are pure functions: no locks, no
// I/O, safe to re-execute any number of times in parallel. The rendering
// layer consumes their results; it never reaches into the pipeline.
//
// # Error Handling
//
// Services return domain-specific errors defined in errors.go:
//
//	var (
//	    ErrUnknownMetro      = errors.New("unknown metro")
//	    ErrInvalidTransition = errors.New("invalid lifecycle transition")
//	)
package service
