package container

import (
	"context"
	"fmt"
	"runtime/debug"
)

// Awaitable is a value that completes later. A factory is asynchronous when
// the value it returns implements Awaitable: GetAsync and Initialize wait for
// it, Get refuses it with a SyncAsyncMismatchError.
type Awaitable interface {
	Await(ctx context.Context) (any, error)
}

// Promise is the stock Awaitable. The work starts as soon as the promise is
// created and its outcome is delivered to every Await call.
type Promise struct {
	done  chan struct{}
	value any
	err   error
}

var _ Awaitable = (*Promise)(nil)

// Go runs fn in a new goroutine and returns a promise of its result.
// A panic inside fn rejects the promise instead of crashing the process.
func Go(fn func() (any, error)) *Promise {
	p := &Promise{done: make(chan struct{})}

	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("promise panicked: %v\n%s", r, debug.Stack())
			}
		}()

		p.value, p.err = fn()
	}()

	return p
}

// Resolved returns an already fulfilled promise.
func Resolved(value any) *Promise {
	p := &Promise{done: make(chan struct{}), value: value}
	close(p.done)
	return p
}

// Rejected returns an already failed promise.
func Rejected(err error) *Promise {
	p := &Promise{done: make(chan struct{}), err: err}
	close(p.done)
	return p
}

// Done is closed once the promise settles.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the promise settles or ctx is done.
func (p *Promise) Await(ctx context.Context) (any, error) {
	select {
	case <-p.done:
		return p.value, p.err
	default:
	}

	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
