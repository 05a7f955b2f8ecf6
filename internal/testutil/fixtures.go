package testutil

import (
	"errors"
	"sync/atomic"

	"github.com/yieldgate/sdk-go/container"
)

// Service is a pointer-identity value produced by counting factories.
type Service struct {
	Name string
	Seq  int64
}

// Closer records whether Close was called and in which order.
type Closer struct {
	Name   string
	Err    error
	closed atomic.Bool
	log    *[]string
}

// NewCloser creates a Closer that appends its name to log when closed.
func NewCloser(name string, log *[]string) *Closer {
	return &Closer{Name: name, log: log}
}

// Close implements container.Disposable.
func (c *Closer) Close() error {
	c.closed.Store(true)
	if c.log != nil {
		*c.log = append(*c.log, c.Name)
	}
	return c.Err
}

// Closed reports whether Close was called.
func (c *Closer) Closed() bool {
	return c.closed.Load()
}

// ErrFactory is returned by FailingFactory.
var ErrFactory = errors.New("factory failed")

// CountingFactory builds a fresh *Service per call and counts invocations.
type CountingFactory struct {
	Name  string
	calls atomic.Int64
}

// NewCountingFactory creates a CountingFactory for name.
func NewCountingFactory(name string) *CountingFactory {
	return &CountingFactory{Name: name}
}

// Factory returns a synchronous container.Factory.
func (f *CountingFactory) Factory() container.Factory {
	return func(container.Resolver) (any, error) {
		return &Service{Name: f.Name, Seq: f.calls.Add(1)}, nil
	}
}

// AsyncFactory returns a factory whose result is delivered through a promise.
func (f *CountingFactory) AsyncFactory() container.Factory {
	return func(container.Resolver) (any, error) {
		seq := f.calls.Add(1)
		return container.Go(func() (any, error) {
			return &Service{Name: f.Name, Seq: seq}, nil
		}), nil
	}
}

// Calls returns how many times the factory ran.
func (f *CountingFactory) Calls() int {
	return int(f.calls.Load())
}

// FailingFactory returns a factory that always fails with ErrFactory.
func FailingFactory() container.Factory {
	return func(container.Resolver) (any, error) {
		return nil, ErrFactory
	}
}

// DependentFactory returns a factory that resolves deps through the
// resolver before building its own value.
func DependentFactory(name string, deps ...string) container.Factory {
	return func(r container.Resolver) (any, error) {
		for _, dep := range deps {
			if _, err := r.Get(dep); err != nil {
				return nil, err
			}
		}
		return &Service{Name: name}, nil
	}
}
