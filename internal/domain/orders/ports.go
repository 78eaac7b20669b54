package orders

import "context"

// ExportSource retrieves typed export rows from the legacy ERP export
// service. Implementations own the session, retry and extraction protocol;
// exhausted retries surface as ErrRetriesExhausted with an empty row set.
type ExportSource interface {
	FetchRows(ctx context.Context, cfg ExportConfig) ([]TypedRow, error)

	// ResetSession discards the current authentication token and performs a
	// fresh handshake.
	ResetSession(ctx context.Context) error
}

// OrderLookup queries the e-commerce platform for an order's shipping data.
// A miss (not found, timeout, network failure) is a normal outcome and must
// be reported as a nil record with a nil error, never as an error.
type OrderLookup interface {
	GetOrderDetails(ctx context.Context, orderID int64) (*ExternalOrder, error)
}
