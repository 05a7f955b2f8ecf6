package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrNoBaseURL is returned by New when the configuration has no base URL.
var ErrNoBaseURL = errors.New("transport: base URL is required")

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	// Code is the machine-readable error code from the body, if any.
	Code      string
	Message   string
	RequestID string
	Method    string
	Path      string
	// Body is the raw response body.
	Body []byte

	retryAfter time.Duration
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d", e.Method, e.Path, e.StatusCode)
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " (request %s)", e.RequestID)
	}
	return b.String()
}

// Retryable reports whether repeating the request may succeed.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// RetryAfter returns the delay requested by the Retry-After header.
func (e *APIError) RetryAfter() time.Duration {
	return e.retryAfter
}

// RequestError wraps a failure to obtain any response.
type RequestError struct {
	Method string
	Path   string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// newAPIError builds an APIError from a failed response. The gateway reports
// errors as {"message": ...}, {"error": {"code": ..., "message": ...}} or
// {"error": "..."}; anything else falls back to the status text.
func newAPIError(method, path string, resp *http.Response, body []byte, requestID string, now time.Time) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode,
		Method:     method,
		Path:       path,
		Body:       body,
		RequestID:  requestID,
		retryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), now),
	}
	if id := resp.Header.Get(HeaderRequestID); id != "" {
		e.RequestID = id
	}

	if gjson.ValidBytes(body) {
		e.Message = firstString(body, "message", "error.message", "error", "detail")
		e.Code = firstString(body, "code", "error.code")
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode)
	}

	return e
}

func firstString(body []byte, paths ...string) string {
	for _, path := range paths {
		r := gjson.GetBytes(body, path)
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
		if r.Type == gjson.Number {
			return r.Raw
		}
	}
	return ""
}

// parseRetryAfter accepts delay-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
