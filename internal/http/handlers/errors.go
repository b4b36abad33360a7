// Package handlers defines the error codes carried by ErrorResponse.
//
// Codes are lowercase snake_case and only used for failures raised at the
// HTTP boundary; data access failures are rendered by renderError without
// an envelope.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
)
