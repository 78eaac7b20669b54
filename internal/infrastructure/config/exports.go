package config

import "github.com/dispatch/backend/internal/domain/orders"

// defaultColumnMapping renames the export's escaped column names to the
// canonical dataset columns. The upstream encodes spaces in element names
// as "_x0020_"; accented characters come through verbatim.
func defaultColumnMapping() map[string]string {
	return map[string]string{
		"IDCliente":                      orders.ColClientID,
		"IDPedido":                       orders.ColOrderID,
		"item_id":                        orders.ColItemID,
		"EAN":                            orders.ColEAN,
		"Descripción":                    orders.ColDescription,
		"Cantidad":                       orders.ColQuantity,
		"Tipo_x0020_de_x0020_Envío":      orders.ColShippingType,
		"Dirección_x0020_de_x0020_Envío": orders.ColAddress,
		"Observaciones":                  orders.ColNotes,
		"Fecha_x0020_de_x0020_envío":     orders.ColShipDate,
		"Orden_x0020_TN":                 orders.ColExternalRef,
		"NombreCliente":                  orders.ColCustomerName,
		"orderID":                        orders.ColOrderRef,
	}
}

func defaultFinalColumns() []string {
	return []string{
		orders.ColClientID, orders.ColOrderID, orders.ColItemID, orders.ColEAN,
		orders.ColDescription, orders.ColQuantity, orders.ColShippingType,
		orders.ColAddress, orders.ColNotes, orders.ColShipDate,
		orders.ColExternalRef, orders.ColCustomerName, orders.ColOrderRef,
	}
}

// DefaultExportRegistry builds the registry of exports the service knows
// about. Both warehouses share one dataset shape and differ only in their
// export id and reported source name.
func DefaultExportRegistry() (*orders.ExportRegistry, error) {
	return orders.NewExportRegistry([]orders.ExportConfig{
		{
			ExportID:      80,
			ColumnMapping: defaultColumnMapping(),
			FinalColumns:  defaultFinalColumns(),
			SourceName:    "DatosPedidosGlobalBluepointID80",
		},
		{
			ExportID:      104,
			ColumnMapping: defaultColumnMapping(),
			FinalColumns:  defaultFinalColumns(),
			SourceName:    "DatosPedidosGlobalBluepointID104",
		},
	})
}
