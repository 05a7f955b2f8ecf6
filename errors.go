package yieldgate

import "fmt"

// ConfigError is returned by New when the configuration is invalid or the
// transport cannot be built from it.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("yieldgate: invalid configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
