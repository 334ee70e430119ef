package faultz

import (
	"context"
	"errors"
	"sync/atomic"
)

// NotFoundError is a declared failure used across the package tests.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string { return "not found: " + e.Key }

// ConflictError is a second, unrelated declared failure.
type ConflictError struct {
	Key string
}

func (e *ConflictError) Error() string { return "conflict: " + e.Key }

// TemporaryError is an interface target; TimeoutError is a proper subtype.
type TemporaryError interface {
	error
	Temporary() bool
}

type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string { return e.Op + " timed out" }
func (*TimeoutError) Temporary() bool { return true }

// StoreError wraps a lower-level failure, the way a mapper would.
type StoreError struct {
	Op    string
	Cause error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Cause.Error() }
func (e *StoreError) Unwrap() error { return e.Cause }

var errDefect = errors.New("defect: nil map write")

// counter counts invocations of the functions it builds.
type counter struct {
	calls int64
}

func (c *counter) count() int { return int(atomic.LoadInt64(&c.calls)) }

func (c *counter) hit() { atomic.AddInt64(&c.calls, 1) }

// succeeding returns an operation that succeeds with value.
func succeeding[E error, A, R any](c *counter, value R) Operation[A, R, E] {
	return Apply[E](func(_ context.Context, _ A) (R, error) {
		c.hit()
		return value, nil
	})
}

// failing returns an operation that fails with err.
func failing[E error, A, R any](c *counter, err error) Operation[A, R, E] {
	return Apply[E](func(_ context.Context, _ A) (R, error) {
		c.hit()
		var zero R
		return zero, err
	})
}

// panicking returns an operation that panics with v.
func panicking[E error, A, R any](c *counter, v any) Operation[A, R, E] {
	return Apply[E](func(_ context.Context, _ A) (R, error) {
		c.hit()
		panic(v)
	})
}

// capturePanic runs fn and returns what it panicked with.
func capturePanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}
