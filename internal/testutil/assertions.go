package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldgate/sdk-go/container"
)

// AssertResolvable checks if a dependency can be resolved with the expected type
func AssertResolvable[T any](t *testing.T, r container.Resolver, name string) T {
	t.Helper()
	value, err := container.Resolve[T](r, name)
	require.NoError(t, err, "failed to resolve %q as %T", name, *new(T))
	return value
}

// AssertNotRegistered checks if resolution fails with a not registered error
func AssertNotRegistered(t *testing.T, r container.Resolver, name string) {
	t.Helper()
	_, err := r.Get(name)
	assert.Error(t, err)
	assert.True(t, container.IsNotRegistered(err), "expected not registered error, got: %v", err)
}

// AssertNotInitialized checks if resolution fails because Initialize has not run
func AssertNotInitialized(t *testing.T, r container.Resolver, name string) {
	t.Helper()
	_, err := r.Get(name)
	assert.Error(t, err)
	assert.True(t, container.IsNotInitialized(err), "expected not initialized error, got: %v", err)
}

// AssertCircularDependency checks if an error is a circular dependency error
func AssertCircularDependency(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, container.IsCircularDependency(err), "expected circular dependency error, got: %v", err)
}

// AssertErrorType checks if an error is of a specific type
func AssertErrorType[T error](t *testing.T, err error, msgAndArgs ...any) T {
	t.Helper()
	var target T
	assert.ErrorAs(t, err, &target, msgAndArgs...)
	return target
}

// AssertSameInstance verifies two resolutions returned the same instance
func AssertSameInstance(t *testing.T, expected, actual any, msgAndArgs ...any) {
	t.Helper()
	assert.Same(t, expected, actual, msgAndArgs...)
}

// AssertDifferentInstances verifies two resolutions returned different instances
func AssertDifferentInstances(t *testing.T, first, second any, msgAndArgs ...any) {
	t.Helper()
	assert.NotSame(t, first, second, msgAndArgs...)
}
