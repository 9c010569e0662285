package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safarpk/safarpk/internal/domain"
)

type errorResponse struct {
	Error     string   `json:"error"`
	Code      string   `json:"code"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details []string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: requestID(c),
	})
}

// respondDomainError maps service errors to HTTP responses. Unknown errors
// are logged and answered with a generic 500.
func respondDomainError(c *gin.Context, err error) {
	var perr domain.PricingError
	switch {
	case errors.As(err, &perr):
		respondError(c, http.StatusUnprocessableEntity, "pricing_invalid", "pricing is invalid", perr.Messages)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		log.Printf("ERROR: request_id=%s %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func respondBadRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
}
