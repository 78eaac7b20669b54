// Package erp implements the orders.ExportSource port against the legacy
// SOAP export service: token session management, the fixed-shape SOAP 1.1
// operations, and the two-stage unwrap/extract pipeline that turns the
// service's double-encoded XML payload into typed rows.
package erp
