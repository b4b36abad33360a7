// Package handlers provides the HTTP handlers for lists and list items.
//
// This file holds the response helpers shared by every endpoint. Two
// failure shapes exist:
//
//   - Boundary failures detected by the transport itself (malformed JSON,
//     unparsable path ids, unknown routes, rate limiting) use the JSON
//     ErrorResponse envelope produced by Fail.
//   - Data access failures (domain.Error) go through renderError, the
//     single dispatcher mapping each error kind to its status and body:
//     not found → 404 empty, pool error → 500 with the cause as plain text,
//     anything else → 500 empty.
//
// Example boundary error:
//
//	HTTP/1.1 400 Bad Request
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "bad_request",
//	  "message": "invalid JSON body"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-lists-backend/internal/domain"
	"github.com/tbourn/go-lists-backend/internal/http/middleware"
)

// ErrorResponse is the envelope returned for boundary failures.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"bad_request"`
	// Human-readable message
	Message string `json:"message" example:"invalid JSON body"`
}

// fail aborts the request with an ErrorResponse; 5xx are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// renderError translates a data access failure into its HTTP response.
func renderError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	if kind != domain.KindNotFound {
		middleware.LoggerFrom(c).Error().
			Err(err).
			Str("kind", kind.String()).
			Msg("request failed")
	}
	_ = c.Error(err)

	switch kind {
	case domain.KindNotFound:
		c.AbortWithStatus(http.StatusNotFound)
	case domain.KindPool:
		var msg string
		if cause := unwrapCause(err); cause != nil {
			msg = cause.Error()
		}
		c.Abort()
		c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte(msg))
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// unwrapCause returns the error wrapped by the outermost domain.Error.
func unwrapCause(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Err
	}
	return err
}
