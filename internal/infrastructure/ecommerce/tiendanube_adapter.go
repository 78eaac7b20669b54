// Package ecommerce provides adapters for the storefront platforms orders
// can originate from. Currently that is Tiendanube, used to enrich
// exported orders with the buyer's shipping address.
package ecommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dispatch/backend/internal/domain/orders"
)

// maxResponseSize caps a single order payload read from the store API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// TiendanubeConfig holds configuration for the Tiendanube store API.
type TiendanubeConfig struct {
	// APIBaseURL is the root of the store API
	APIBaseURL string
	// StoreID identifies the store whose orders are looked up
	StoreID string
	// AccessToken is the store's API access token
	AccessToken string
	// UserAgent is required by the API on every request
	UserAgent string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// TiendanubeDefaultAPIURL is the production API endpoint
const TiendanubeDefaultAPIURL = "https://api.tiendanube.com/v1"

var (
	ErrTiendanubeConfigMissingStore = errors.New("tiendanube: store id is required")
	ErrTiendanubeConfigMissingToken = errors.New("tiendanube: access token is required")
)

// NewTiendanubeConfig creates a configuration with defaults.
func NewTiendanubeConfig(storeID, accessToken, userAgent string) *TiendanubeConfig {
	return &TiendanubeConfig{
		APIBaseURL:     TiendanubeDefaultAPIURL,
		StoreID:        storeID,
		AccessToken:    accessToken,
		UserAgent:      userAgent,
		TimeoutSeconds: 10,
	}
}

// Validate checks that the configuration is complete.
func (c *TiendanubeConfig) Validate() error {
	if c.StoreID == "" {
		return ErrTiendanubeConfigMissingStore
	}
	if c.AccessToken == "" {
		return ErrTiendanubeConfigMissingToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = TiendanubeDefaultAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
	return nil
}

// TiendanubeAdapter implements the orders.OrderLookup port against the
// Tiendanube store API. Lookups are best-effort: any failure is logged
// and reported as a miss, never as an error, so enrichment can degrade
// to the fallback address parser.
type TiendanubeAdapter struct {
	config     *TiendanubeConfig
	httpClient *http.Client
	logger     *zap.Logger
}

var _ orders.OrderLookup = (*TiendanubeAdapter)(nil)

// NewTiendanubeAdapter creates an adapter with the given configuration.
func NewTiendanubeAdapter(config *TiendanubeConfig, logger *zap.Logger) (*TiendanubeAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TiendanubeAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// GetOrderDetails fetches one order from the store API. A nil order with a
// nil error means the lookup did not produce usable data.
func (a *TiendanubeAdapter) GetOrderDetails(ctx context.Context, orderID int64) (*orders.ExternalOrder, error) {
	url := fmt.Sprintf("%s/%s/orders/%d",
		strings.TrimRight(a.config.APIBaseURL, "/"), a.config.StoreID, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Warn("tiendanube: building request failed",
			zap.Int64("order_id", orderID), zap.Error(err))
		return nil, nil
	}
	req.Header.Set("Authentication", "bearer "+a.config.AccessToken)
	req.Header.Set("User-Agent", a.config.UserAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Warn("tiendanube: request failed",
			zap.Int64("order_id", orderID), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("tiendanube: unexpected status",
			zap.Int64("order_id", orderID), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var payload tiendanubeOrder
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&payload); err != nil {
		a.logger.Warn("tiendanube: decoding response failed",
			zap.Int64("order_id", orderID), zap.Error(err))
		return nil, nil
	}

	return toDomainOrder(&payload), nil
}

func toDomainOrder(payload *tiendanubeOrder) *orders.ExternalOrder {
	out := &orders.ExternalOrder{
		ID:     payload.ID,
		Number: payload.Number,
	}
	if addr := payload.ShippingAddress; addr != nil {
		out.ShippingAddress = &orders.ShippingAddress{
			Phone:    addr.Phone,
			Address:  addr.Address,
			Number:   addr.Number,
			Floor:    addr.Floor,
			Zipcode:  addr.Zipcode,
			City:     addr.City,
			Locality: addr.Locality,
			Province: addr.Province,
			Country:  addr.Country,
			Name:     addr.Name,
		}
	}
	return out
}
