package container

import "fmt"

// Disposable is implemented by values that hold resources.
// Singletons constructed by the container that implement it are closed by
// Container.Close.
//
// Example:
//
//	type Transport struct {
//	    http *http.Client
//	}
//
//	func (t *Transport) Close() error {
//	    t.http.CloseIdleConnections()
//	    return nil
//	}
type Disposable interface {
	Close() error
}

type namedDisposable struct {
	name       string
	disposable Disposable
}

// Close disposes every constructed singleton implementing Disposable in
// reverse construction order, then clears the container. Values stored with
// SetValue belong to the caller and are not closed. Calling Close again is a
// no-op that returns nil.
func (c *Container) Close() error {
	c.mu.Lock()
	disposables := c.disposables
	c.disposables = nil
	c.mu.Unlock()

	var errs []error

	// Dispose in reverse order (LIFO)
	for i := len(disposables) - 1; i >= 0; i-- {
		d := disposables[i]
		if err := d.disposable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}

	c.Clear()

	if len(errs) > 0 {
		return DisposalError{Errors: errs}
	}
	return nil
}
