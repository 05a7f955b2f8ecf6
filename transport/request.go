package transport

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

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/yieldgate/sdk-go/internal/retry"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 10 << 20

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.resolve(path, query)

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("%s %s: encode request: %w", method, path, err)
		}
	}

	token, err := c.token(ctx)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: fmt.Errorf("token: %w", err)}
	}

	cacheable := method == http.MethodGet && token == ""
	if cacheable {
		if data, ok := c.cache.get(target); ok {
			c.metrics.hit()
			c.logger.Debug("served from cache", zap.String("method", method), zap.String("path", path))
			return decode(data, out)
		}
	}

	policy := c.policy
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.metrics.retry(method)
		c.logger.Warn("retrying request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	var data []byte
	err = retry.Do(ctx, policy, func(int) error {
		var attemptErr error
		data, attemptErr = c.attempt(ctx, method, path, target, payload, token)
		return attemptErr
	}, func(err error) bool {
		return ctx.Err() == nil && isRetryable(err)
	})
	if err != nil {
		return err
	}

	switch {
	case cacheable:
		c.cache.add(target, data)
	case method != http.MethodGet:
		// Writes make cached reads stale.
		c.cache.purge()
	}

	return decode(data, out)
}

// attempt performs one round trip and returns the unwrapped payload.
func (c *Client) attempt(ctx context.Context, method, path, target string, payload []byte, token string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &RequestError{Method: method, Path: path, Err: err}
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &RequestError{Method: method, Path: path, Err: err}
	}

	requestID := uuid.NewString()
	c.setHeaders(req, requestID, token, payload != nil)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(method, 0, c.now().Sub(start))
		return nil, &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	elapsed := c.now().Sub(start)
	c.metrics.observe(method, resp.StatusCode, elapsed)
	if err != nil {
		return nil, &RequestError{Method: method, Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(method, path, resp, raw, requestID, c.now())
	}

	return unwrap(raw), nil
}

func (c *Client) setHeaders(req *http.Request, requestID, token string, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.cfg.APIKey)
	}
	if c.cfg.PartnerID != "" {
		req.Header.Set(HeaderPartnerID, c.cfg.PartnerID)
	}
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(HeaderRequestID, requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token(ctx)
}

// resolve joins path and query to the base URL.
func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawPath = ""
	u.RawQuery = query.Encode()
	return u.String()
}

// unwrap returns the data member of an enveloped response, or raw itself.
func unwrap(raw []byte) []byte {
	if len(bytes.TrimSpace(raw)) == 0 || !gjson.ValidBytes(raw) {
		return raw
	}
	if !gjson.ParseBytes(raw).IsObject() {
		return raw
	}
	if data := gjson.GetBytes(raw, "data"); data.Exists() {
		return []byte(data.Raw)
	}
	return raw
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	if isTimeout(reqErr.Err) {
		return true
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isTimeout reports a per-attempt client timeout, which is worth retrying
// even though it surfaces as a deadline error.
func isTimeout(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}
