package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
	"github.com/dispatch/backend/internal/domain/shared"
	"github.com/dispatch/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response, deriving the status code from the error code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeInternal, message)
}

// HandlePipelineError maps an order-pipeline error onto the legacy
// interface contract: every degraded export outcome surfaces as
// not-found, while the tagged cause goes to the log. Only a response the
// pipeline could not interpret at all is an internal error.
func (h *BaseHandler) HandlePipelineError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, orders.ErrExportNotConfigured):
		h.NotFound(c, err.Error())
	case errors.Is(err, orders.ErrMalformedResponse):
		logger.Error("export response could not be parsed",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err))
		h.InternalError(c, "upstream response could not be processed")
	case errors.Is(err, orders.ErrEmptyResult),
		errors.Is(err, orders.ErrNoRows),
		errors.Is(err, orders.ErrRetriesExhausted),
		errors.Is(err, orders.ErrAuthenticationFailed),
		errors.Is(err, orders.ErrTokenInvalid),
		errors.Is(err, orders.ErrTransportTimeout),
		errors.Is(err, orders.ErrTransportFailed):
		logger.Warn("export degraded, reporting not-found",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err))
		h.NotFound(c, "no orders available")
	default:
		logger.Error("unhandled pipeline error",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err))
		h.InternalError(c, "internal error")
	}
}
