package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	applabels "github.com/dispatch/backend/internal/application/labels"
)

// LabelsService is the application-layer contract the handler needs.
type LabelsService interface {
	Generate(ctx context.Context, params applabels.GenerateParams) (string, error)
}

// LabelHandler serves printable ZPL labels for individual orders.
type LabelHandler struct {
	BaseHandler
	service LabelsService
	logger  *zap.Logger
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(service LabelsService, logger *zap.Logger) *LabelHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelHandler{service: service, logger: logger}
}

// RegisterRoutes registers label routes
func (h *LabelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/:exportID/:orderID/labels", h.Download)
}

// Download renders the order's labels and returns them as a text
// attachment, one ZPL document per bundle.
func (h *LabelHandler) Download(c *gin.Context) {
	exportID, err := strconv.Atoi(c.Param("exportID"))
	if err != nil {
		h.BadRequest(c, "export id must be an integer")
		return
	}
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		h.BadRequest(c, "order id must be an integer")
		return
	}
	bundles, err := strconv.Atoi(c.DefaultQuery("bundles", "1"))
	if err != nil || bundles < 1 {
		h.BadRequest(c, "bundles must be a positive integer")
		return
	}

	content, err := h.service.Generate(c.Request.Context(), applabels.GenerateParams{
		ExportID:     exportID,
		OrderID:      orderID,
		Bundles:      bundles,
		ShippingType: c.Query("shipping_type"),
		AddressType:  c.Query("address_type"),
	})
	if err != nil {
		h.HandlePipelineError(c, h.logger, err)
		return
	}

	filename := applabels.Filename(exportID, orderID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
