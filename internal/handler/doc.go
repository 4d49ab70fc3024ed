// Package handler provides HTTP request handlers for the board API.
//
// The handler package contains all HTTP endpoint implementations organized by
// domain. Each handler struct encapsulates the dependencies needed to serve
// requests for a specific feature area (listings, submissions, payments,
// moderation).
//
// # Handler Pattern
//
// All handlers follow a consistent pattern:
//
//   - Constructor function (NewXxxHandler) accepts its service dependencies
//   - Methods handle specific HTTP endpoints
//   - Response helpers from response.go standardize output format
//   - Errors are mapped to RFC 9457 Problem Details responses
//
// # Response Format
//
// Handlers use standardized response functions:
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources
//   - WriteJSON: Raw JSON response
//   - WriteError: RFC 9457 Problem Details error response
//
// # Error Mapping
//
// Service errors are translated centrally by MapServiceError, so the same
// sentinel always produces the same status code regardless of which endpoint
// surfaced it.
//
// # Authentication
//
// Public routes (listings, submissions, payment callbacks) require no
// authentication. Moderation routes sit behind the operator token middleware.
package handler
