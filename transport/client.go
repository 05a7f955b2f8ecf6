// Package transport is the HTTP layer the API clients call the gateway through.
//
// A Client joins request paths to the configured base URL, attaches default
// and bearer headers, encodes and decodes JSON, retries transient failures
// with backoff, optionally rate limits and caches anonymous GETs, and turns
// every non-2xx response into an *APIError.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yieldgate/sdk-go/config"
	"github.com/yieldgate/sdk-go/internal/retry"
)

// Header names set on every request.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderAPIKey    = "X-API-Key"
	HeaderPartnerID = "X-Partner-ID"
)

// Requester is the HTTP capability the API clients depend on.
//
// out receives the decoded response payload; a nil out discards it. When the
// gateway wraps the payload as {"data": ...}, only data is decoded.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Client is the stock Requester.
type Client struct {
	baseURL *url.URL
	cfg     config.Config
	http    *http.Client
	ownHTTP bool
	logger  *zap.Logger
	tokens  TokenSource
	metrics *Metrics
	limiter *rate.Limiter
	cache   *responseCache
	policy  retry.Policy

	now func() time.Time
}

var _ Requester = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client, whose timeout is Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
			c.ownHTTP = false
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTokenSource attaches a bearer token to each request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithMetrics records request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a Client from cfg.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: base,
		cfg:     cfg.Clone(),
		http:    &http.Client{Timeout: cfg.Timeout},
		ownHTTP: true,
		logger:  zap.NewNop(),
		cache:   newResponseCache(cfg.CacheSize, cfg.CacheTTL),
		policy:  retry.DefaultPolicy(cfg.RetryCount, cfg.RetryDelay, cfg.MaxRetryDelay),
		now:     time.Now,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// BaseURL returns the gateway root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get sends a GET request with the given query.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch sends body as JSON.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// InvalidateCache drops every cached GET response.
func (c *Client) InvalidateCache() {
	c.cache.purge()
}

// Close releases idle connections of the *http.Client the Client created.
// A client supplied with WithHTTPClient belongs to the caller and is left alone.
func (c *Client) Close() error {
	if c.ownHTTP {
		c.http.CloseIdleConnections()
	}
	return nil
}
