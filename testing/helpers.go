// Package testing provides test utilities for faultz-based code.
//
// This package includes mock operations, call-counting spies for mappers,
// handlers and fallbacks, assertion helpers, and a chaos operation that
// injects failures on either channel.
//
// Example usage:
//
//	func TestLookup(t *testing.T) {
//		primary := ftesting.NewMockOperation[string, int, *NotFoundError](t, "primary")
//		primary.WithReturn(0, &NotFoundError{Key: "a"})
//		fallback := ftesting.NewSpy("fallback", func(_ context.Context, _ string) (int, error) {
//			return 7, nil
//		})
//
//		op := faultz.OnErrorApply(primary.Operation(), faultz.Apply[faultz.Never](fallback.Func()))
//		result, err := op(context.Background(), "a")
//
//		require.NoError(t, err)
//		assert.Equal(t, 7, result)
//		ftesting.AssertCalled(t, primary, 1)
//		ftesting.AssertCalled(t, fallback, 1)
//	}
package testing

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	mathrand "math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/faultz"
)

// Counted is implemented by every test double that counts its invocations.
type Counted interface {
	Name() string
	CallCount() int
}

// MockOperation provides a configurable mock faultz.Operation.
// It tracks calls, allows configuring return values and panics, and provides
// assertion helpers for verifying which operations a combinator invoked.
type MockOperation[A, R any, E error] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	t           *testing.T
	name        string
	callCount   int64
	lastInput   A
	returnVal   R
	returnErr   error
	panicVal    any
	mu          sync.RWMutex
	callHistory []MockCall[A]
	maxHistory  int
}

// MockCall represents a single call to a mock operation.
type MockCall[A any] struct {
	Input     A
	Timestamp time.Time
	Context   context.Context
}

// NewMockOperation creates a new mock operation declaring E.
// The mock succeeds with the zero value of R until configured otherwise.
func NewMockOperation[A, R any, E error](t *testing.T, name string) *MockOperation[A, R, E] {
	return &MockOperation[A, R, E]{
		t:          t,
		name:       name,
		maxHistory: 100, // Keep last 100 calls by default
	}
}

// WithReturn configures the mock to return specific values.
func (m *MockOperation[A, R, E]) WithReturn(val R, err error) *MockOperation[A, R, E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnVal = val
	m.returnErr = err
	return m
}

// WithPanic configures the mock to panic with v.
// This is useful for checking that panics pass through combinators untouched.
func (m *MockOperation[A, R, E]) WithPanic(v any) *MockOperation[A, R, E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicVal = v
	return m
}

// WithHistorySize configures how many calls to keep in history.
// Set to 0 to disable history tracking.
func (m *MockOperation[A, R, E]) WithHistorySize(size int) *MockOperation[A, R, E] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.callHistory = nil
	} else if len(m.callHistory) > size {
		m.callHistory = m.callHistory[len(m.callHistory)-size:]
	}
	return m
}

// Name returns the name of the mock operation.
func (m *MockOperation[A, R, E]) Name() string {
	return m.name
}

// Invoke records the call and returns the configured values, or panics.
func (m *MockOperation[A, R, E]) Invoke(ctx context.Context, args A) (R, error) {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.lastInput = args
	if m.maxHistory > 0 {
		m.callHistory = append(m.callHistory, MockCall[A]{
			Input:     args,
			Timestamp: time.Now(),
			Context:   ctx,
		})
		if len(m.callHistory) > m.maxHistory {
			m.callHistory = m.callHistory[1:] // Remove oldest
		}
	}
	returnVal := m.returnVal
	returnErr := m.returnErr
	panicVal := m.panicVal
	m.mu.Unlock()

	if panicVal != nil {
		panic(panicVal)
	}
	return returnVal, returnErr
}

// Operation returns the mock as a faultz.Operation.
func (m *MockOperation[A, R, E]) Operation() faultz.Operation[A, R, E] {
	return m.Invoke
}

// CallCount returns the number of times Invoke has been called.
func (m *MockOperation[A, R, E]) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastInput returns the input from the most recent call.
func (m *MockOperation[A, R, E]) LastInput() A {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInput
}

// CallHistory returns a copy of all recorded calls.
func (m *MockOperation[A, R, E]) CallHistory() []MockCall[A] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	history := make([]MockCall[A], len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// Reset clears all call tracking.
func (m *MockOperation[A, R, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.callCount, 0)
	m.lastInput = *new(A)
	m.callHistory = nil
}

// Spy counts calls to a function shaped like a mapper, handler or operation.
// Anything of the form func(context.Context, In) (Out, error) can be spied
// on: Func returns the counting wrapper.
type Spy[In, Out any] struct {
	name      string
	fn        func(context.Context, In) (Out, error)
	callCount int64
	mu        sync.RWMutex
	lastInput In
}

// NewSpy creates a spy around fn.
func NewSpy[In, Out any](name string, fn func(context.Context, In) (Out, error)) *Spy[In, Out] {
	return &Spy[In, Out]{name: name, fn: fn}
}

// Func returns the counting wrapper around the spied function.
func (s *Spy[In, Out]) Func() func(context.Context, In) (Out, error) {
	return func(ctx context.Context, in In) (Out, error) {
		atomic.AddInt64(&s.callCount, 1)
		s.mu.Lock()
		s.lastInput = in
		s.mu.Unlock()
		return s.fn(ctx, in)
	}
}

// Name returns the name of the spy.
func (s *Spy[In, Out]) Name() string {
	return s.name
}

// CallCount returns the number of calls made through Func.
func (s *Spy[In, Out]) CallCount() int {
	return int(atomic.LoadInt64(&s.callCount))
}

// LastInput returns the input of the most recent call.
func (s *Spy[In, Out]) LastInput() In {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastInput
}

// Assertion Helpers

// AssertCalled verifies that a test double was called exactly n times.
func AssertCalled(t *testing.T, c Counted, expectedCalls int) {
	t.Helper()
	actualCalls := c.CallCount()
	if actualCalls != expectedCalls {
		t.Errorf("expected %s to be called %d times, but was called %d times",
			c.Name(), expectedCalls, actualCalls)
	}
}

// AssertNotCalled verifies that a test double was never called.
func AssertNotCalled(t *testing.T, c Counted) {
	t.Helper()
	AssertCalled(t, c, 0)
}

// AssertChannel verifies that err lands on the expected channel for E.
func AssertChannel[E error](t *testing.T, err error, expected faultz.Channel) {
	t.Helper()
	if _, actual := faultz.Classify[E](err); actual != expected {
		t.Errorf("expected %v to be on the %s channel, but it is on the %s channel", err, expected, actual)
	}
}

// AssertSameError verifies that actual is the identical error value as expected.
func AssertSameError(t *testing.T, expected, actual error) {
	t.Helper()
	if actual != expected { //nolint:errorlint // identity, not equivalence, is under test
		t.Errorf("expected the identical error %v (%T), got %v (%T)", expected, expected, actual, actual)
	}
}

// ChaosOperation wraps an operation and randomly replaces its outcome with
// a declared failure, an undeclared failure or a panic.
type ChaosOperation[A, R any, E error] struct { //nolint:govet // fieldalignment: Test helper struct optimized for functionality over memory efficiency
	name            string
	wrapped         faultz.Operation[A, R, E]
	declared        func() E
	declaredRate    float64
	undeclaredRate  float64
	panicRate       float64
	rng             *mathrand.Rand
	mu              sync.Mutex
	totalCalls      int64
	declaredCalls   int64
	undeclaredCalls int64
	panicCalls      int64
}

// ChaosConfig holds configuration for chaos testing.
type ChaosConfig struct {
	DeclaredRate   float64 // Probability of failing declared (0.0 to 1.0)
	UndeclaredRate float64 // Probability of failing undeclared (0.0 to 1.0)
	PanicRate      float64 // Probability of panicking (0.0 to 1.0)
	Seed           int64   // Random seed for reproducible chaos (0 for random seed)
}

// ErrChaos is the undeclared failure injected by a ChaosOperation.
var ErrChaos = errors.New("chaos: injected undeclared failure")

// NewChaosOperation creates a chaos operation. declared builds the declared
// failure to inject.
func NewChaosOperation[A, R any, E error](name string, wrapped faultz.Operation[A, R, E], declared func() E, config ChaosConfig) *ChaosOperation[A, R, E] {
	seed := config.Seed
	if seed == 0 {
		var seedBytes [8]byte
		if _, err := rand.Read(seedBytes[:]); err != nil {
			seed = time.Now().UnixNano()
		} else {
			for _, b := range seedBytes {
				seed = seed<<8 | int64(b)
			}
		}
	}

	return &ChaosOperation[A, R, E]{
		name:           name,
		wrapped:        wrapped,
		declared:       declared,
		declaredRate:   config.DeclaredRate,
		undeclaredRate: config.UndeclaredRate,
		panicRate:      config.PanicRate,
		rng:            mathrand.New(mathrand.NewSource(seed)), //nolint:gosec // test helper
	}
}

// Name returns the name of the chaos operation.
func (c *ChaosOperation[A, R, E]) Name() string {
	return c.name
}

// CallCount returns the total number of invocations.
func (c *ChaosOperation[A, R, E]) CallCount() int {
	return int(atomic.LoadInt64(&c.totalCalls))
}

// Invoke runs the wrapped operation or injects a failure.
func (c *ChaosOperation[A, R, E]) Invoke(ctx context.Context, args A) (R, error) {
	atomic.AddInt64(&c.totalCalls, 1)

	c.mu.Lock()
	roll := c.rng.Float64()
	c.mu.Unlock()

	var zero R
	switch {
	case roll < c.panicRate:
		atomic.AddInt64(&c.panicCalls, 1)
		panic(fmt.Sprintf("chaos: injected panic in %s", c.name))
	case roll < c.panicRate+c.undeclaredRate:
		atomic.AddInt64(&c.undeclaredCalls, 1)
		return zero, ErrChaos
	case roll < c.panicRate+c.undeclaredRate+c.declaredRate:
		atomic.AddInt64(&c.declaredCalls, 1)
		return zero, c.declared()
	default:
		return c.wrapped(ctx, args)
	}
}

// Operation returns the chaos operation as a faultz.Operation.
func (c *ChaosOperation[A, R, E]) Operation() faultz.Operation[A, R, E] {
	return c.Invoke
}

// Stats returns the injection counters.
func (c *ChaosOperation[A, R, E]) Stats() ChaosStats {
	return ChaosStats{
		TotalCalls:      atomic.LoadInt64(&c.totalCalls),
		DeclaredCalls:   atomic.LoadInt64(&c.declaredCalls),
		UndeclaredCalls: atomic.LoadInt64(&c.undeclaredCalls),
		PanicCalls:      atomic.LoadInt64(&c.panicCalls),
	}
}

// ChaosStats holds statistics about chaos injection.
type ChaosStats struct {
	TotalCalls      int64
	DeclaredCalls   int64
	UndeclaredCalls int64
	PanicCalls      int64
}

// String returns a human-readable representation of the stats.
func (s ChaosStats) String() string {
	return fmt.Sprintf("ChaosStats{Total: %d, Declared: %d, Undeclared: %d, Panics: %d}",
		s.TotalCalls, s.DeclaredCalls, s.UndeclaredCalls, s.PanicCalls)
}

// Helper Functions

// ParallelTest runs a test function in parallel with multiple goroutines.
// Useful for checking that composed operations are safe for concurrent use.
func ParallelTest(t *testing.T, goroutines int, testFunc func(int)) {
	t.Helper()

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}

	wg.Wait()
}

// CapturePanic runs fn and returns the value it panicked with, or nil.
func CapturePanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	fn()
	return nil
}
