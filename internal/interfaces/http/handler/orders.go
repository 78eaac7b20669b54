package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
	"github.com/dispatch/backend/internal/interfaces/http/dto"
)

// OrdersService is the application-layer contract the handler needs.
type OrdersService interface {
	GetOrders(ctx context.Context, exportID int) ([]orders.GroupedOrder, error)
	ResetSession(ctx context.Context) error
}

// OrderHandler serves the grouped, enriched orders of an export and the
// export session control endpoint.
type OrderHandler struct {
	BaseHandler
	service OrdersService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service OrdersService, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{service: service, logger: logger}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:exportID", h.List)
	rg.POST("/erp/session/reset", h.ResetSession)
}

// List returns the orders of one export run.
func (h *OrderHandler) List(c *gin.Context) {
	exportID, err := strconv.Atoi(c.Param("exportID"))
	if err != nil {
		h.BadRequest(c, "export id must be an integer")
		return
	}

	result, err := h.service.GetOrders(c.Request.Context(), exportID)
	if err != nil {
		h.HandlePipelineError(c, h.logger, err)
		return
	}
	if len(result) == 0 {
		h.NotFound(c, fmt.Sprintf("no orders found for export %d", exportID))
		return
	}

	h.Success(c, result)
}

// ResetSession discards the export session and authenticates again.
func (h *OrderHandler) ResetSession(c *gin.Context) {
	if err := h.service.ResetSession(c.Request.Context()); err != nil {
		h.logger.Error("session reset failed", zap.Error(err))
		h.Error(c, dto.ErrCodeUpstream, "could not re-establish the export session")
		return
	}
	h.Success(c, gin.H{"status": "session reset"})
}
