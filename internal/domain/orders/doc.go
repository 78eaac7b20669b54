// Package orders contains the Orders bounded context.
// This context models grouped order records retrieved from the legacy ERP
// export service and enriched with e-commerce shipping data.
//
// Key concepts:
//   - TypedRow / Value: typed column values produced by the export extractor
//   - GroupedOrder: one order header plus its line items and derived totals
//   - ExportConfig: validated per-export column mapping configuration
//   - ExportSource / OrderLookup: port interfaces for the ERP export service
//     and the e-commerce order lookup
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package orders
