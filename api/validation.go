package api

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	hashPattern    = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// ValidationError is returned before any request is sent when an argument
// is malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("api: invalid %s: %s", e.Field, e.Reason)
}

func validateAddress(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if !addressPattern.MatchString(value) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a 0x-prefixed 20-byte hex address", value)}
	}
	return nil
}

func validateHash(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if !hashPattern.MatchString(value) {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a 0x-prefixed 32-byte hex hash", value)}
	}
	return nil
}

func requireValue(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// pathf formats a request path, escaping every argument as a path segment.
func pathf(format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(arg)
	}
	return fmt.Sprintf(format, escaped...)
}
