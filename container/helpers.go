package container

import (
	"context"
	"fmt"
	"reflect"
)

// Resolve resolves name synchronously and asserts its type.
//
// Example:
//
//	httpClient, err := container.Resolve[*transport.Client](r, "httpClient")
func Resolve[T any](r Resolver, name string) (T, error) {
	value, err := r.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}

	return assertType[T](name, value)
}

// ResolveAsync resolves name, waiting for an asynchronous factory, and
// asserts its type.
func ResolveAsync[T any](ctx context.Context, r Resolver, name string) (T, error) {
	value, err := r.GetAsync(ctx, name)
	if err != nil {
		var zero T
		return zero, err
	}

	return assertType[T](name, value)
}

// MustResolve resolves a dependency or panics.
// Use this only when you are certain the dependency exists and is built,
// typically right after a successful Initialize.
func MustResolve[T any](r Resolver, name string) T {
	value, err := Resolve[T](r, name)
	if err != nil {
		panic(fmt.Sprintf("container: failed to resolve %q: %v", name, err))
	}
	return value
}

func assertType[T any](name string, value any) (T, error) {
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, TypeMismatchError{
			Name:     name,
			Expected: reflect.TypeOf((*T)(nil)).Elem(),
			Actual:   reflect.TypeOf(value),
		}
	}
	return typed, nil
}
