package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"order-dashboard/internal/model"

	"github.com/rs/zerolog"
)

// ErrTransport marks failures that never produced an HTTP response.
var ErrTransport = errors.New("orders API unreachable")

// APIError is returned when the orders API answers with a non-2xx status.
// Message holds the "message" field of the error body when the backend sent one.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Endpoint, e.StatusCode)
}

// MessageOf extracts the backend-reported message from err, if any.
func MessageOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// Observer receives one call per upstream request.
type Observer interface {
	ObserveUpstream(endpoint, outcome string, duration time.Duration)
}

// Config holds the orders API client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithObserver records request outcomes, typically into Prometheus.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// Client talks to the remote orders API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	observer   Observer
	logger     zerolog.Logger
}

// New creates a new orders API client.
func New(cfg Config, logger zerolog.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger.With().Str("component", "orders-client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildURL joins the base URL and endpoint with exactly one slash.
func (c *Client) BuildURL(endpoint string) string {
	return c.baseURL + "/" + strings.Trim(endpoint, "/")
}

// ListOrders fetches the full order collection.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "orders", &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}

	c.logger.Debug().Int("count", len(orders)).Msg("fetched orders")

	return orders, nil
}

// GetOrder fetches the detail record of a single order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	if orderID == "" {
		return nil, model.ErrOrderIDRequired
	}

	var detail model.OrderDetail
	if err := c.do(ctx, http.MethodGet, "orders/"+url.PathEscape(orderID), &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

// SyncOrders asks the backend to pull new orders from the marketplace.
// The response body is ignored.
func (c *Client) SyncOrders(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "orders/sync", nil)
}

// GetStats fetches the aggregate order statistics.
func (c *Client) GetStats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats
	if err := c.do(ctx, http.MethodGet, "orders/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do executes a request and decodes a JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, out any) error {
	target := c.BuildURL(endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, "transport_error", start)
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("url", target).
			Msg("orders API request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(endpoint, "transport_error", start)
		return fmt.Errorf("%w: failed to read response from %s: %w", ErrTransport, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(endpoint, "api_error", start)
		apiErr := &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
		c.logger.Warn().
			Str("method", method).
			Str("url", target).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("orders API returned an error")
		return apiErr
	}

	c.observe(endpoint, "success", start)

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error().Err(err).Str("url", target).Msg("failed to decode orders API response")
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	return nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstream(metricEndpoint(endpoint), outcome, time.Since(start))
}

// metricEndpoint collapses per-order paths so metric cardinality stays bounded.
func metricEndpoint(endpoint string) string {
	switch {
	case endpoint == "orders", endpoint == "orders/sync", endpoint == "orders/stats":
		return endpoint
	case strings.HasPrefix(endpoint, "orders/"):
		return "orders/{id}"
	default:
		return endpoint
	}
}

// errorMessage pulls the "message" field out of an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
