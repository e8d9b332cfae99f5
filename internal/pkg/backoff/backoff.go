// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package backoff provides exponential backoff with jitter for retrying operations.
package backoff

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Policy configures Retry.
type Policy struct {
	// MaxAttempts is the maximum number of calls, at least 1.
	MaxAttempts int
	// InitialDelay is the upper bound of the first wait.
	InitialDelay time.Duration
	// MaxDelay caps the upper bound of every wait.
	MaxDelay time.Duration
}

// DefaultPolicy returns the policy used for network calls.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  4,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     8 * time.Second,
	}
}

// Permanent wraps err so that Retry returns it without retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry calls f until it succeeds, returns a Permanent error, the context is
// done, or the policy's attempts are exhausted. Between attempts it waits a
// random duration between half the current delay and the delay, doubling the
// delay up to MaxDelay after each attempt.
//
// The attempt number passed to f starts at 0.
func Retry[T any](ctx context.Context, policy Policy, f func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	maxAttempts := max(policy.MaxAttempts, 1)
	delay := policy.InitialDelay
	var lastErr error
	for attempt := range maxAttempts {
		result, err := f(ctx, attempt)
		if err == nil {
			return result, nil
		}
		var permanent *permanentError
		if errors.As(err, &permanent) {
			return zero, permanent.err
		}
		lastErr = err
		if attempt == maxAttempts-1 {
			break
		}
		timer := time.NewTimer(jitter(delay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, errors.Join(ctx.Err(), lastErr)
		case <-timer.C:
		}
		delay = min(delay*2, policy.MaxDelay)
	}
	return zero, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// *** PRIVATE ***

type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

func jitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	return delay/2 + time.Duration(rand.Int64N(int64(delay/2)+1))
}
