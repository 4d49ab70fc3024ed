// Package middleware provides HTTP middleware for the board API.
//
// The middleware package contains reusable middleware components for
// authentication, rate limiting, and request processing.
//
// # Available Middleware
//
// Core middleware components:
//
//   - OperatorAuth: bearer-token guard for moderation routes
//   - RateLimit: request rate limiting per identity/IP
//   - Idempotency: idempotent request handling via Idempotency-Key
//   - RequestID, Logger, Recovery, CORS, Compress: request plumbing
//
// # Operator Authentication
//
// Moderation routes are guarded by a single operator bearer token, compared
// against a bcrypt hash from configuration:
//
//	operatorAuth := middleware.OperatorAuth(cfg.Operator.TokenHash)
//	mux.Handle("GET /v1/moderation/queue", operatorAuth(http.HandlerFunc(h.Queue)))
//
// # Rate Limiting
//
// Rate limiting protects against abuse with a token bucket per identity
// (falling back to remote address for anonymous requests).
//
// # Context Values
//
// Middleware sets context values accessible via helper functions:
//
//   - GetUserID(ctx): Returns the acting identity
//   - GetRequestID(ctx): Returns unique request identifier
package middleware
