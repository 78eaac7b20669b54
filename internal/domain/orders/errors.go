package orders

import "errors"

var (
	// Session errors
	ErrAuthenticationFailed = errors.New("orders: soap authentication failed")
	ErrTokenInvalid         = errors.New("orders: soap token invalid or expired")

	// Transport errors
	ErrTransportTimeout = errors.New("orders: soap request timed out")
	ErrTransportFailed  = errors.New("orders: soap request failed")

	// Extraction errors
	ErrMalformedResponse = errors.New("orders: malformed soap response")
	ErrEmptyResult       = errors.New("orders: export result element empty")
	ErrNoRows            = errors.New("orders: no row elements in export document")

	// Pipeline errors
	ErrRetriesExhausted    = errors.New("orders: export retries exhausted")
	ErrExportNotConfigured = errors.New("orders: export id not configured")
)
