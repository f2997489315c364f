package http

import (
	"errors"
	"net/http"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// Error codes returned in ErrorResponse.Code
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"     // 400
	ErrCodeNotFound           = "NOT_FOUND"           // 404
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"   // 429
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeNotImplemented     = "NOT_IMPLEMENTED"     // 501
	ErrCodeUpstreamFailure    = "UPSTREAM_FAILURE"    // 502
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status, code, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}

func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, ErrCodeInvalidRequest, err.Error()
	case errors.Is(err, domain.ErrJournalEntryNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrCodeTooManyRequests, "video search quota exhausted, try again later"
	case errors.Is(err, domain.ErrVideoSearchDisabled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, err.Error()
	case errors.Is(err, domain.ErrVideoSearchFailure):
		return http.StatusBadGateway, ErrCodeUpstreamFailure, "video search request failed"
	case errors.Is(err, domain.ErrJournalUnavailable), errors.Is(err, domain.ErrCacheUnavailable):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "internal server error"
	}
}

// respondInvalid replies 400 with a specific message
func respondInvalid(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Code: ErrCodeInvalidRequest, Message: message})
}

// respondNotConfigured replies 501 for features the server was started without
func respondNotConfigured(c *gin.Context, feature string) {
	c.AbortWithStatusJSON(http.StatusNotImplemented, ErrorResponse{
		Code:    ErrCodeNotImplemented,
		Message: feature + " not configured",
	})
}
