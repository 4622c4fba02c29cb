// Package handlers defines HTTP-layer error codes used across all API
// endpoints. Codes are lowercase snake_case, stable, and machine-readable;
// handlers pass them to fail() together with the HTTP status and a
// human-readable message. Clients branch on the code, not the message.
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeDailyLimit       = "daily_limit_reached"
	ErrCodeUpstream         = "upstream_unavailable"
	ErrCodeExhausted        = "generation_exhausted"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
