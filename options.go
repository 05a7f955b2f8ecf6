package yieldgate

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/yieldgate/sdk-go/transport"
)

type options struct {
	logger     *zap.Logger
	httpClient *http.Client
	tokens     transport.TokenSource
	registerer prometheus.Registerer
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger used by the client and its transport.
// Without it the client is silent, unless Config.Debug is set.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the *http.Client requests are sent with.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTokenSource replaces the built-in session with ts. Auth().Verify and
// Auth().Refresh then only store tokens if ts implements api.TokenSetter.
func WithTokenSource(ts transport.TokenSource) Option {
	return func(o *options) {
		o.tokens = ts
	}
}

// WithMetrics registers the transport's Prometheus collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
