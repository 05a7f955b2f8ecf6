// Package config holds the SDK configuration and its loaders.
package config

import (
	"maps"
	"time"
)

// Version is reported in the default User-Agent.
const Version = "0.4.0"

const (
	DefaultBaseURL       = "https://api.yieldgate.finance/v1"
	DefaultTimeout       = 30 * time.Second
	DefaultRetryCount    = 3
	DefaultRetryDelay    = time.Second
	DefaultMaxRetryDelay = 30 * time.Second
	DefaultUserAgent     = "yieldgate-sdk-go/" + Version
	DefaultCacheSize     = 256
	DefaultCacheTTL      = 30 * time.Second
)

// Config describes how the SDK reaches the gateway.
type Config struct {
	// BaseURL is the gateway root every request path is joined to.
	BaseURL string `mapstructure:"base_url" json:"base_url"`

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`

	// RetryCount is the number of retries after the first attempt.
	RetryCount    int           `mapstructure:"retry_count" json:"retry_count"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" json:"retry_delay"`
	MaxRetryDelay time.Duration `mapstructure:"max_retry_delay" json:"max_retry_delay"`

	APIKey    string            `mapstructure:"api_key" json:"-"`
	PartnerID string            `mapstructure:"partner_id" json:"partner_id,omitempty"`
	UserAgent string            `mapstructure:"user_agent" json:"user_agent"`
	Headers   map[string]string `mapstructure:"headers" json:"headers,omitempty"`

	// RateLimit is the sustained requests per second. Zero disables limiting.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst" json:"rate_burst"`

	// CacheSize is the number of GET responses kept. Zero disables caching.
	CacheSize int           `mapstructure:"cache_size" json:"cache_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" json:"cache_ttl"`

	Debug bool `mapstructure:"debug" json:"debug"`
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		RetryCount:    DefaultRetryCount,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		UserAgent:     DefaultUserAgent,
		Headers:       map[string]string{},
		CacheSize:     DefaultCacheSize,
		CacheTTL:      DefaultCacheTTL,
	}
}

// Clone returns a copy that shares no maps with c.
func (c Config) Clone() Config {
	c.Headers = maps.Clone(c.Headers)
	return c
}
