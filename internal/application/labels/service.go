package labels

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
	"github.com/dispatch/backend/internal/domain/shared"
)

// OrderProvider supplies the grouped orders labels are generated from.
type OrderProvider interface {
	GetOrders(ctx context.Context, exportID int) ([]orders.GroupedOrder, error)
}

// Renderer turns a flat field map into one label document.
type Renderer interface {
	Render(fields map[string]string) (string, error)
}

// LabelService builds the per-order label context and renders one label
// per bundle.
type LabelService struct {
	provider OrderProvider
	renderer Renderer
	logger   *zap.Logger
}

// NewLabelService creates a new LabelService
func NewLabelService(provider OrderProvider, renderer Renderer, logger *zap.Logger) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{provider: provider, renderer: renderer, logger: logger}
}

// GenerateParams selects the order and adjusts the label content. The
// override fields, when non-empty, win over the values derived from the
// order itself.
type GenerateParams struct {
	ExportID int
	OrderID  int64
	// Bundles is the number of packages; one label is produced per bundle.
	Bundles int
	// ShippingType overrides the label's shipping type line.
	ShippingType string
	// AddressType overrides the Domicilio/Sucursal classification.
	AddressType string
}

// Generate renders the labels for one order, joined with newlines so the
// result prints as a single ZPL batch.
func (s *LabelService) Generate(ctx context.Context, params GenerateParams) (string, error) {
	grouped, err := s.provider.GetOrders(ctx, params.ExportID)
	if err != nil {
		return "", err
	}

	order := findOrder(grouped, params.OrderID)
	if order == nil {
		return "", fmt.Errorf("%w: order %d in export %d", shared.ErrNotFound, params.OrderID, params.ExportID)
	}

	bundles := params.Bundles
	if bundles < 1 {
		bundles = 1
	}

	fields := labelFields(order, params)
	fields["TOTAL_BULTOS"] = strconv.Itoa(bundles)

	docs := make([]string, 0, bundles)
	for bundle := 1; bundle <= bundles; bundle++ {
		fields["BULTO_ACTUAL"] = strconv.Itoa(bundle)
		doc, err := s.renderer.Render(fields)
		if err != nil {
			return "", err
		}
		docs = append(docs, doc)
	}

	s.logger.Info("labels generated",
		zap.Int("export_id", params.ExportID),
		zap.Int64("order_id", params.OrderID),
		zap.Int("bundles", bundles))
	return strings.Join(docs, "\n"), nil
}

// Filename names the downloadable label file for an order.
func Filename(exportID int, orderID int64) string {
	return fmt.Sprintf("etiqueta_pedido_ExpID%d_SOH%d.txt", exportID, orderID)
}

func findOrder(grouped []orders.GroupedOrder, orderID int64) *orders.GroupedOrder {
	for i := range grouped {
		if n, ok := grouped[i].OrderID.CoerceInt(); ok && n == orderID {
			return &grouped[i]
		}
	}
	return nil
}

// labelFields flattens an order into the template's field map. Every value
// is cleaned of the exporter's escaped-space artifacts, and blank values
// become "N/A" so the printed label never shows an empty slot.
func labelFields(order *orders.GroupedOrder, params GenerateParams) map[string]string {
	shippingType := order.ShippingType.Text()
	if params.ShippingType != "" {
		shippingType = params.ShippingType
	}

	externalRef := ""
	switch {
	case order.ExternalOrderNumber != nil:
		externalRef = strconv.FormatInt(*order.ExternalOrderNumber, 10)
	case order.ExternalOrderID != nil:
		externalRef = strconv.FormatInt(*order.ExternalOrderID, 10)
	}

	return map[string]string{
		"ID_PEDIDO":             fieldOrDefault(order.OrderID.Text()),
		"ORDEN_TN":              fieldOrDefault(externalRef),
		"NOMBRE_DESTINATARIO":   fieldOrDefault(firstNonEmpty(deref(order.RecipientName), order.CustomerName.Text())),
		"TELEFONO_DESTINATARIO": fieldOrDefault(deref(order.RecipientPhone)),
		"DIRECCION_CALLE":       fieldOrDefault(firstNonEmpty(deref(order.StreetAddress), order.RawAddress.Text())),
		"CODIGO_POSTAL":         fieldOrDefault(deref(order.PostalCode)),
		"BARRIO":                fieldOrDefault(firstNonEmpty(deref(order.Neighborhood), deref(order.Locality))),
		"LOCALIDAD":             fieldOrDefault(firstNonEmpty(deref(order.Locality), deref(order.Neighborhood))),
		"PROVINCIA":             fieldOrDefault(deref(order.Province)),
		"OBSERVACIONES":         fieldOrDefault(order.Notes.Text()),
		"FUENTE":                fieldOrDefault(order.Source.Text()),
		"TIPO_ENVIO_ETIQUETA":   fieldOrDefault(shippingType),
		"TIPO_DOMICILIO":        addressType(shippingType, params.AddressType),
		"CANTIDAD_ITEMS_PEDIDO": strconv.FormatInt(order.TotalQuantity, 10),
		"SKUS_CONCATENADOS":     fieldOrDefault(order.ConcatenatedSKUs),
	}
}

// addressType classifies the destination as a home or pickup-branch
// delivery based on the shipping type text; an explicit override wins.
func addressType(shippingType, override string) string {
	if override != "" {
		return override
	}
	lower := strings.ToLower(shippingType)
	switch {
	case strings.Contains(lower, "sucursal"):
		return "Sucursal"
	case strings.Contains(lower, "domicilio"):
		return "Domicilio"
	default:
		return "N/A"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fieldOrDefault(s string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, "_x0020_", " "))
	if cleaned == "" {
		return "N/A"
	}
	return cleaned
}
