// Package retry adapts exponential backoff to the HTTP transport.
package retry

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy configures Do.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries   int
	InitialDelay time.Duration
	// MaxDelay caps every delay, including server-provided ones. Zero means no cap.
	MaxDelay   time.Duration
	Multiplier float64
	// Jitter is the symmetric random spread as a fraction of the delay, e.g. 0.25 for ±25%.
	Jitter float64

	// OnRetry is called before sleeping for the next attempt.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns a policy with the given retries and delays, doubling
// between attempts with ±20% jitter.
func DefaultPolicy(maxRetries int, initial, maxDelay time.Duration) Policy {
	return Policy{
		MaxRetries:   maxRetries,
		InitialDelay: initial,
		MaxDelay:     maxDelay,
		Multiplier:   2,
		Jitter:       0.2,
	}
}

// Delayer is implemented by errors that carry a server-requested delay,
// such as an HTTP Retry-After header.
type Delayer interface {
	RetryAfter() time.Duration
}

// NewBackOff returns the backoff sequence of p. Every delay, jittered ones
// included, is capped at MaxDelay.
func (p Policy) NewBackOff() backoff.BackOff {
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	maxInterval := p.MaxDelay
	if maxInterval <= 0 {
		maxInterval = time.Duration(math.MaxInt64)
	}

	return &cappedBackOff{
		BackOff: &backoff.ExponentialBackOff{
			InitialInterval:     max(p.InitialDelay, 0),
			RandomizationFactor: p.Jitter,
			Multiplier:          multiplier,
			MaxInterval:         maxInterval,
		},
		limit: p.MaxDelay,
	}
}

// Backoff returns the delay before retry number attempt (1-based).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 || p.InitialDelay <= 0 {
		return 0
	}

	b := p.NewBackOff()
	var delay time.Duration
	for i := 0; i < attempt; i++ {
		delay = b.NextBackOff()
	}
	return delay
}

// Do calls fn until it succeeds, returns an error retryable rejects, or the
// policy runs out of retries. attempt starts at 0. A nil retryable retries
// every error. The last error is returned unchanged.
func Do(ctx context.Context, p Policy, fn func(attempt int) error, retryable func(error) bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	attempt := 0
	operation := func() (struct{}, error) {
		err := fn(attempt)
		attempt++
		switch {
		case err == nil:
			return struct{}{}, nil
		case retryable != nil && !retryable(err):
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, p.serverDelay(err)
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(p.NewBackOff()),
		backoff.WithMaxTries(uint(max(p.MaxRetries, 0))+1),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, delay time.Duration) {
			if p.OnRetry != nil {
				p.OnRetry(attempt, delay, original(err))
			}
		}),
	)
	return original(err)
}

// serverDelay attaches a capped Retry-After delay that backoff.Retry uses
// instead of the computed one.
func (p Policy) serverDelay(err error) error {
	var d Delayer
	if !errors.As(err, &d) {
		return err
	}

	after := d.RetryAfter()
	if after <= 0 {
		return err
	}
	if p.MaxDelay > 0 && after > p.MaxDelay {
		after = p.MaxDelay
	}
	return &waitError{err: err, after: &backoff.RetryAfterError{Duration: after}}
}

// waitError pairs an operation error with the delay requested for it.
type waitError struct {
	err   error
	after *backoff.RetryAfterError
}

func (e *waitError) Error() string   { return e.err.Error() }
func (e *waitError) Unwrap() []error { return []error{e.err, e.after} }

// original strips the wrappers Do adds for backoff.Retry.
func original(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	var delayed *waitError
	if errors.As(err, &delayed) {
		err = delayed.err
	}
	return err
}

type cappedBackOff struct {
	backoff.BackOff
	limit time.Duration
}

func (b *cappedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if b.limit > 0 && next > b.limit {
		return b.limit
	}
	return next
}
