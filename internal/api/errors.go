package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/flockfeed/backend/internal/llm"
	"github.com/pageza/flockfeed/backend/internal/middleware"
	"github.com/pageza/flockfeed/backend/internal/service"
)

// statusFor maps a service or model error to its HTTP status.
func statusFor(err error) int {
	var upstream *llm.UpstreamError

	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInactive),
		errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrStorageDisabled),
		errors.Is(err, service.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err. Unclassified errors are
// attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := middleware.ErrorResponse{Error: err.Error()}

	var svcErr *service.Error
	var parse *llm.ParseError
	switch {
	case errors.As(err, &svcErr):
		body.Error = svcErr.Message
	case errors.As(err, &parse):
		body.Error = "failed to parse model response"
		body.Detail = parse.Excerpt()
		_ = c.Error(err)
	case status == http.StatusInternalServerError:
		body.Error = "internal server error"
		_ = c.Error(err)
	}

	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error()})
}
