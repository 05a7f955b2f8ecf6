package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/yieldgate/sdk-go/internal/graph"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Typed errors below match these through errors.Is.

var (
	ErrNotRegistered        = errors.New("dependency not found")
	ErrNotInitialized       = errors.New("container not initialized")
	ErrCircularDependency   = graph.ErrCircularDependency
	ErrSyncAsyncMismatch    = errors.New("asynchronous factory resolved synchronously")
	ErrPostInitMissing      = errors.New("dependency missing after initialization")
	ErrUndeclaredDependency = errors.New("undeclared dependency")

	// ErrClearedDuringInitialize is returned by an Initialize pass that
	// observed Clear. The container stays uninitialized.
	ErrClearedDuringInitialize = errors.New("container cleared during initialization")
)

var (
	_ error = NotRegisteredError{}
	_ error = NotInitializedError{}
	_ error = CircularDependencyError{}
	_ error = SyncAsyncMismatchError{}
	_ error = PostInitMissingError{}
	_ error = UndeclaredDependencyError{}
	_ error = FactoryError{}
	_ error = FactoryPanicError{}
	_ error = TypeMismatchError{}
	_ error = ModuleError{}
	_ error = DisposalError{}
	_ error = LifetimeError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// NotRegisteredError indicates a name has no value, cached singleton or definition.
type NotRegisteredError struct {
	Name string
}

func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("dependency not found: %q is not registered", e.Name)
}

func (e NotRegisteredError) Is(target error) bool { return target == ErrNotRegistered }

// NotInitializedError indicates an eager singleton was requested before Initialize ran.
type NotInitializedError struct {
	Name string
}

func (e NotInitializedError) Error() string {
	return fmt.Sprintf("dependency %q is an eager singleton: container must be initialized first (call Initialize or register it as lazy)", e.Name)
}

func (e NotInitializedError) Is(target error) bool { return target == ErrNotInitialized }

// CircularDependencyError is returned when a name is re-entered while it is
// still under construction, or when the initialization order contains a cycle.
type CircularDependencyError = graph.CircularDependencyError

// SyncAsyncMismatchError indicates Get reached a factory that returned an Awaitable.
type SyncAsyncMismatchError struct {
	Name string
}

func (e SyncAsyncMismatchError) Error() string {
	return fmt.Sprintf("dependency %q has an asynchronous factory: use GetAsync or call Initialize first", e.Name)
}

func (e SyncAsyncMismatchError) Is(target error) bool { return target == ErrSyncAsyncMismatch }

// PostInitMissingError indicates an eager singleton is absent even though
// initialization completed. It points at a registration bug in the owner.
type PostInitMissingError struct {
	Name string
}

func (e PostInitMissingError) Error() string {
	return fmt.Sprintf("dependency %q not found after initialization", e.Name)
}

func (e PostInitMissingError) Is(target error) bool { return target == ErrPostInitMissing }

// UndeclaredDependencyError is returned in strict mode when a factory fetches
// a name that it did not declare with DependsOn.
type UndeclaredDependencyError struct {
	Name       string
	Dependency string
	Declared   []string
}

func (e UndeclaredDependencyError) Error() string {
	return fmt.Sprintf("factory for %q fetched %q which is not among its declared dependencies [%s]",
		e.Name, e.Dependency, strings.Join(e.Declared, ", "))
}

func (e UndeclaredDependencyError) Is(target error) bool { return target == ErrUndeclaredDependency }

// FactoryError wraps an error returned (or rejected) by a factory.
type FactoryError struct {
	Name  string
	Cause error
}

func (e FactoryError) Error() string {
	return fmt.Sprintf("failed to construct %q: %v", e.Name, e.Cause)
}

func (e FactoryError) Unwrap() error {
	return e.Cause
}

// FactoryPanicError indicates a factory panicked. It captures the panic
// value and stack trace for debugging.
type FactoryPanicError struct {
	Name  string
	Panic any
	Stack []byte
}

func (e FactoryPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("factory for %q panicked: %v\n", e.Name, e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// TypeMismatchError indicates a resolved value does not have the requested type.
type TypeMismatchError struct {
	Name     string
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("dependency %q: expected %s, got %s", e.Name, formatType(e.Expected), formatType(e.Actual))
}

// ModuleError wraps errors from module registration.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// DisposalError aggregates disposal errors
type DisposalError struct {
	Errors []error
}

func (e DisposalError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("container disposal failed: %v", e.Errors[0])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("container disposal failed with %d errors:", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
	}
	return sb.String()
}

func (e DisposalError) Unwrap() []error {
	return e.Errors
}

// LifetimeError indicates an invalid lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// IsNotRegistered reports whether err is (or wraps) a NotRegisteredError.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsNotInitialized reports whether err is (or wraps) a NotInitializedError.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}

// IsCircularDependency reports whether err is (or wraps) a CircularDependencyError.
func IsCircularDependency(err error) bool {
	return errors.Is(err, ErrCircularDependency)
}

// IsSyncAsyncMismatch reports whether err is (or wraps) a SyncAsyncMismatchError.
func IsSyncAsyncMismatch(err error) bool {
	return errors.Is(err, ErrSyncAsyncMismatch)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
