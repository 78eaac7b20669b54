package orders

// Canonical column names shared by both configured exports. JSON field names
// on the aggregates below must stay aligned with these: they are the contract
// the reporting/label front end consumes.
const (
	ColClientID     = "IDCliente"
	ColOrderID      = "IDPedido"
	ColItemID       = "item_id"
	ColEAN          = "EAN"
	ColDescription  = "Descripción"
	ColQuantity     = "Cantidad"
	ColShippingType = "Tipo de Envío"
	ColAddress      = "Dirección de Envío"
	ColNotes        = "Observaciones"
	ColShipDate     = "Fecha de envío"
	ColExternalRef  = "Orden TN"
	ColCustomerName = "NombreCliente"
	ColOrderRef     = "orderID"
	ColSource       = "Fuente"
)

// HeaderColumns lists the columns whose first-row values form the order header.
var HeaderColumns = []string{
	ColClientID, ColOrderID, ColShippingType,
	ColAddress, ColNotes,
	ColShipDate, ColExternalRef, ColSource, ColCustomerName, ColOrderRef,
}

// ItemColumns lists the columns copied into each line item.
var ItemColumns = []string{ColItemID, ColEAN, ColDescription, ColQuantity}

// FreeTextColumns are never numeric-coerced; they keep their string form.
var FreeTextColumns = map[string]bool{
	ColShippingType: true,
	ColAddress:      true,
	ColNotes:        true,
	ColExternalRef:  true,
	ColCustomerName: true,
	ColDescription:  true,
	ColSource:       true,
}

// OrderHeader holds the per-order fields of a grouped export record. The
// first block comes straight from the export's first row for the order; the
// second block is populated by enrichment (external lookup or address
// fallback parse).
type OrderHeader struct {
	ClientID     Value `json:"IDCliente"`
	OrderID      Value `json:"IDPedido"`
	ShippingType Value `json:"Tipo de Envío"`
	RawAddress   Value `json:"Dirección de Envío"`
	Notes        Value `json:"Observaciones"`
	ShipDate     Value `json:"Fecha de envío"`
	ExternalRef  Value `json:"Orden TN"`
	Source       Value `json:"Fuente"`
	CustomerName Value `json:"NombreCliente"`
	OrderRef     Value `json:"orderID"`

	RecipientPhone      *string `json:"telefono_destinatario"`
	StreetAddress       *string `json:"direccion_calle"`
	PostalCode          *string `json:"codigo_postal"`
	Neighborhood        *string `json:"barrio"`
	Locality            *string `json:"localidad_tn"`
	Province            *string `json:"provincia_tn"`
	Country             *string `json:"pais_tn"`
	RecipientName       *string `json:"nombre_destinatario_tn"`
	ExternalOrderID     *int64  `json:"tiendanube_order_id"`
	ExternalOrderNumber *int64  `json:"tiendanube_order_number"`
}

// OrderItem is a single export row restricted to the line-item columns.
type OrderItem struct {
	ItemID      Value `json:"item_id"`
	EAN         Value `json:"EAN"`
	Description Value `json:"Descripción"`
	Quantity    Value `json:"Cantidad"`
}

// GroupedOrder is one order header plus its ordered line items and the
// derived label totals.
type GroupedOrder struct {
	OrderHeader
	Items            []OrderItem `json:"Items"`
	TotalQuantity    int64       `json:"cantidad_total_items_pedido"`
	ConcatenatedSKUs string      `json:"skus_concatenados"`

	// LookupRef is the permissively parsed external order reference used for
	// the enrichment lookup. Nil disables the lookup for this order only.
	LookupRef *int64 `json:"-"`
}

// ShippingAddress is the usable part of an external order-lookup record.
// All fields are optional; the source API returns null for absent data.
type ShippingAddress struct {
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Number   *string `json:"number"`
	Floor    *string `json:"floor"`
	Zipcode  *string `json:"zipcode"`
	City     *string `json:"city"`
	Locality *string `json:"locality"`
	Province *string `json:"province"`
	Country  *string `json:"country"`
	Name     *string `json:"name"`
}

// ExternalOrder is the result of an enrichment lookup.
type ExternalOrder struct {
	ID              *int64           `json:"id"`
	Number          *int64           `json:"number"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
}

// Usable reports whether the lookup result carries a shipping address that
// can populate the enrichment fields.
func (o *ExternalOrder) Usable() bool {
	return o != nil && o.ShippingAddress != nil
}
