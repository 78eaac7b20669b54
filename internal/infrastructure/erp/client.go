package erp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
)

const (
	defaultExportTimeout = 2 * time.Minute
	maxAttempts          = 2
)

// Client fetches export datasets over SOAP with a bounded retry protocol:
// at most two attempts per fetch, reauthenticating between them when the
// upstream rejects the token. Authentication failures abort immediately
// since retrying them cannot succeed.
type Client struct {
	creds         Credentials
	session       *Session
	transport     *Transport
	exportTimeout time.Duration
	logger        *zap.Logger
}

var _ orders.ExportSource = (*Client)(nil)

type ClientOption func(*Client)

func WithExportTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.exportTimeout = d }
}

func NewClient(creds Credentials, session *Session, transport *Transport, logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		creds:         creds,
		session:       session,
		transport:     transport,
		exportTimeout: defaultExportTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRows runs the export for the given configuration and returns the
// typed rows of its dataset.
func (c *Client) FetchRows(ctx context.Context, cfg orders.ExportConfig) ([]orders.TypedRow, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		token, err := c.session.EnsureValidToken(ctx)
		if err != nil {
			c.logger.Error("export aborted: cannot obtain token",
				zap.Int("export_id", cfg.ExportID),
				zap.Error(err))
			return nil, err
		}

		resp, err := c.transport.Send(ctx, exportEnvelope(c.creds, token, cfg.ExportID), actionExportByID, c.exportTimeout)
		if err != nil {
			lastErr = err
			c.logger.Warn("export attempt failed",
				zap.Int("export_id", cfg.ExportID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized {
			c.session.Invalidate()
			lastErr = fmt.Errorf("%w: export returned status 401", orders.ErrTokenInvalid)
			c.logger.Warn("export token rejected, will reauthenticate",
				zap.Int("export_id", cfg.ExportID),
				zap.Int("attempt", attempt))
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("%w: export returned status %d", orders.ErrTransportFailed, resp.StatusCode)
			c.logger.Warn("export attempt failed",
				zap.Int("export_id", cfg.ExportID),
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode))
			continue
		}

		if fault, ok := detectFault(resp.Body); ok && isAuthFault(fault) {
			c.session.Invalidate()
			lastErr = fmt.Errorf("%w: %s", orders.ErrTokenInvalid, fault)
			c.logger.Warn("export fault indicates stale token, will reauthenticate",
				zap.Int("export_id", cfg.ExportID),
				zap.Int("attempt", attempt),
				zap.String("fault", fault))
			continue
		}

		inner, err := unwrapInnerDocument(resp.Body)
		if err != nil {
			return nil, err
		}
		raw, err := extractRawRows(inner)
		if err != nil {
			return nil, err
		}
		rows := coerceRows(mapColumns(raw, cfg.ColumnMapping), cfg.FinalColumns)
		c.logger.Info("export fetched",
			zap.Int("export_id", cfg.ExportID),
			zap.Int("rows", len(rows)),
			zap.Int("attempt", attempt))
		return rows, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no attempt completed")
	}
	return nil, fmt.Errorf("%w: %w", orders.ErrRetriesExhausted, lastErr)
}

// ResetSession drops the cached token and authenticates again, so the
// next export runs against a fresh session.
func (c *Client) ResetSession(ctx context.Context) error {
	return c.session.Reset(ctx)
}
