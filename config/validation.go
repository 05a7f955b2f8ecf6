package config

import (
	"fmt"
	"net/url"
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that c can be used to build a transport.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return &ValidationError{Field: "base_url", Reason: "must not be empty"}
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ValidationError{Field: "base_url", Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "base_url", Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &ValidationError{Field: "base_url", Reason: "missing host"}
	}

	if c.Timeout <= 0 {
		return &ValidationError{Field: "timeout", Reason: "must be positive"}
	}
	if c.RetryCount < 0 {
		return &ValidationError{Field: "retry_count", Reason: "must not be negative"}
	}
	if c.RetryDelay < 0 {
		return &ValidationError{Field: "retry_delay", Reason: "must not be negative"}
	}
	if c.MaxRetryDelay < 0 {
		return &ValidationError{Field: "max_retry_delay", Reason: "must not be negative"}
	}

	if c.RateLimit < 0 {
		return &ValidationError{Field: "rate_limit", Reason: "must not be negative"}
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return &ValidationError{Field: "rate_burst", Reason: "must be at least 1 when rate_limit is set"}
	}

	if c.CacheSize < 0 {
		return &ValidationError{Field: "cache_size", Reason: "must not be negative"}
	}
	if c.CacheSize > 0 && c.CacheTTL <= 0 {
		return &ValidationError{Field: "cache_ttl", Reason: "must be positive when cache_size is set"}
	}

	return nil
}
