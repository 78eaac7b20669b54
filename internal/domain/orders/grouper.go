package orders

import (
	"strings"

	"go.uber.org/zap"
)

// GroupRows partitions typed export rows into grouped orders, one per
// distinct order id, preserving the order in which ids first appear. The
// header comes from the group's first row; every row contributes a line item.
//
// Quantities that do not parse are logged and skipped, never fatal: a single
// damaged row must not block the rest of a label run.
func GroupRows(rows []TypedRow, cfg ExportConfig, logger *zap.Logger) []GroupedOrder {
	if logger == nil {
		logger = zap.NewNop()
	}

	var keys []string
	groups := make(map[string][]TypedRow)
	for _, row := range rows {
		id := row.Get(ColOrderID)
		if id.IsNull() {
			logger.Warn("export row without order id, skipping")
			continue
		}
		key := id.mapKey()
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	orders := make([]GroupedOrder, 0, len(keys))
	for _, key := range keys {
		orders = append(orders, buildGroup(groups[key], cfg, logger))
	}
	return orders
}

func buildGroup(group []TypedRow, cfg ExportConfig, logger *zap.Logger) GroupedOrder {
	first := group[0]

	g := GroupedOrder{
		OrderHeader: OrderHeader{
			ClientID:     first.Get(ColClientID),
			OrderID:      first.Get(ColOrderID),
			ShippingType: first.Get(ColShippingType),
			RawAddress:   first.Get(ColAddress),
			Notes:        first.Get(ColNotes),
			ShipDate:     first.Get(ColShipDate),
			ExternalRef:  first.Get(ColExternalRef),
			Source:       StringValue(cfg.SourceName),
			CustomerName: first.Get(ColCustomerName),
			OrderRef:     first.Get(ColOrderRef),
		},
		Items: make([]OrderItem, 0, len(group)),
	}

	// The external order reference arrives as numeric text more often than
	// not; an unparseable value only disables enrichment for this order.
	if ref := g.OrderRef; !ref.IsNull() {
		if n, ok := ref.CoerceInt(); ok {
			g.LookupRef = &n
		} else {
			logger.Warn("external order reference is not numeric, skipping enrichment lookup",
				zap.String("orderRef", ref.Text()),
				zap.String("orderID", g.OrderID.Text()))
		}
	}

	var skus []string
	for _, row := range group {
		item := OrderItem{
			ItemID:      row.Get(ColItemID),
			EAN:         row.Get(ColEAN),
			Description: row.Get(ColDescription),
			Quantity:    row.Get(ColQuantity),
		}
		g.Items = append(g.Items, item)

		if !item.Quantity.IsNull() {
			if qty, ok := item.Quantity.CoerceInt(); ok {
				g.TotalQuantity += qty
			} else {
				logger.Warn("item quantity is not numeric, excluded from total",
					zap.String("quantity", item.Quantity.Text()),
					zap.String("orderID", g.OrderID.Text()))
			}
		}
		if !item.EAN.IsNull() {
			if sku := item.EAN.Text(); sku != "" {
				skus = append(skus, sku)
			}
		}
	}
	g.ConcatenatedSKUs = strings.Join(skus, ", ")

	return g
}
