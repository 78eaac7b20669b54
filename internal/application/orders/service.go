package orders

import (
	"context"

	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
)

// OrderService handles the export-to-orders pipeline: fetch the export
// dataset, group its rows into orders, and enrich each order with the
// buyer's shipping address.
type OrderService struct {
	registry *orders.ExportRegistry
	source   orders.ExportSource
	lookup   orders.OrderLookup
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	registry *orders.ExportRegistry,
	source orders.ExportSource,
	lookup orders.OrderLookup,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		registry: registry,
		source:   source,
		lookup:   lookup,
		logger:   logger,
	}
}

// GetOrders runs the configured export and returns its grouped, enriched
// orders. The result order follows the dataset's first-appearance order.
func (s *OrderService) GetOrders(ctx context.Context, exportID int) ([]orders.GroupedOrder, error) {
	cfg, err := s.registry.Get(exportID)
	if err != nil {
		return nil, err
	}

	rows, err := s.source.FetchRows(ctx, cfg)
	if err != nil {
		return nil, err
	}

	grouped := orders.GroupRows(rows, cfg, s.logger)
	for i := range grouped {
		s.enrichOrder(ctx, &grouped[i])
	}

	s.logger.Info("orders assembled",
		zap.Int("export_id", exportID),
		zap.Int("orders", len(grouped)))
	return grouped, nil
}

// enrichOrder resolves the order's external record when it has a lookup
// reference. Lookup failures degrade to the fallback address parser.
func (s *OrderService) enrichOrder(ctx context.Context, g *orders.GroupedOrder) {
	var ext *orders.ExternalOrder
	if g.LookupRef != nil {
		var err error
		ext, err = s.lookup.GetOrderDetails(ctx, *g.LookupRef)
		if err != nil {
			s.logger.Warn("order lookup failed, using fallback address",
				zap.Int64("lookup_ref", *g.LookupRef),
				zap.Error(err))
			ext = nil
		}
	}
	orders.Enrich(g, ext)
}

// ResetSession discards the export source's session and establishes a
// fresh one.
func (s *OrderService) ResetSession(ctx context.Context) error {
	return s.source.ResetSession(ctx)
}

// ExportIDs lists the export identifiers the service can serve.
func (s *OrderService) ExportIDs() []int {
	return s.registry.IDs()
}
