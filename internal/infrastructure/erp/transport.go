package erp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
)

// Export payloads carry the full dataset inline, so the cap is generous.
const maxResponseSize = 64 * 1024 * 1024

// RawResponse is the outcome of one SOAP POST that reached the server.
// Status classification (401, faults) is the caller's concern.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Transport posts SOAP envelopes to a single endpoint. Timeouts are
// per-call because authentication and export have very different budgets.
type Transport struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewTransport(endpoint string, logger *zap.Logger) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Send posts the envelope with the given SOAPAction and waits up to timeout
// for the full response body. Network-level failures come back as errors
// wrapping orders.ErrTransportTimeout or orders.ErrTransportFailed; any
// HTTP response, whatever its status, is returned as a RawResponse.
func (t *Transport) Send(ctx context.Context, envelope, soapAction string, timeout time.Duration) (*RawResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader([]byte(envelope)))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", orders.ErrTransportFailed, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			t.logger.Warn("soap request timed out",
				zap.String("action", soapAction),
				zap.Duration("timeout", timeout))
			return nil, fmt.Errorf("%w: %s", orders.ErrTransportTimeout, soapAction)
		}
		return nil, fmt.Errorf("%w: %v", orders.ErrTransportFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: reading response for %s", orders.ErrTransportTimeout, soapAction)
		}
		return nil, fmt.Errorf("%w: read response: %v", orders.ErrTransportFailed, err)
	}

	return &RawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
