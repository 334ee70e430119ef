package testing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/faultz"
)

type lookupError struct{ key string }

func (e *lookupError) Error() string { return "lookup failed: " + e.key }

func TestMockOperation(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns Configured Value", func(t *testing.T) {
		mock := NewMockOperation[string, string, *lookupError](t, "mock-test")
		mock.WithReturn("mocked", nil)

		result, err := mock.Invoke(ctx, "input")
		require.NoError(t, err)
		assert.Equal(t, "mocked", result)
	})

	t.Run("Returns Configured Error", func(t *testing.T) {
		mock := NewMockOperation[string, string, *lookupError](t, "mock-error")
		expected := &lookupError{key: "k"}
		mock.WithReturn("", expected)

		_, err := mock.Operation()(ctx, "input")
		assert.Same(t, expected, err)
		AssertChannel[*lookupError](t, err, faultz.DeclaredChannel)
	})

	t.Run("Tracks Calls", func(t *testing.T) {
		mock := NewMockOperation[int, int, *lookupError](t, "mock-count")
		for i := 0; i < 5; i++ {
			_, _ = mock.Invoke(ctx, i)
		}

		AssertCalled(t, mock, 5)
		assert.Equal(t, 4, mock.LastInput())
		assert.Len(t, mock.CallHistory(), 5)

		mock.Reset()
		AssertNotCalled(t, mock)
		assert.Empty(t, mock.CallHistory())
	})

	t.Run("History Size Is Bounded", func(t *testing.T) {
		mock := NewMockOperation[int, int, *lookupError](t, "mock-history").WithHistorySize(2)
		for i := 0; i < 5; i++ {
			_, _ = mock.Invoke(ctx, i)
		}

		history := mock.CallHistory()
		require.Len(t, history, 2)
		assert.Equal(t, 3, history[0].Input)
		assert.Equal(t, 4, history[1].Input)

		mock.WithHistorySize(0)
		assert.Nil(t, mock.CallHistory())
	})

	t.Run("Panics With Configured Value", func(t *testing.T) {
		mock := NewMockOperation[int, int, *lookupError](t, "mock-panic").WithPanic("boom")

		recovered := CapturePanic(func() {
			_, _ = mock.Invoke(ctx, 1)
		})
		assert.Equal(t, "boom", recovered)
		AssertCalled(t, mock, 1)
	})
}

func TestSpy(t *testing.T) {
	t.Run("Counts Calls And Delegates", func(t *testing.T) {
		spy := NewSpy("double", func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})
		fn := spy.Func()

		result, err := fn(context.Background(), 21)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		AssertCalled(t, spy, 1)
		assert.Equal(t, 21, spy.LastInput())
		assert.Equal(t, "double", spy.Name())
	})

	t.Run("Works As A Mapper", func(t *testing.T) {
		mapper := NewSpy("mapper", func(_ context.Context, e *lookupError) (*lookupError, error) {
			return &lookupError{key: e.key + "-mapped"}, nil
		})
		primary := NewMockOperation[string, int, *lookupError](t, "primary").
			WithReturn(0, &lookupError{key: "a"})

		op := faultz.ThrowAsDeclared(primary.Operation(), mapper.Func())
		_, err := op(context.Background(), "a")

		mapped, ok := faultz.Declared[*lookupError](err)
		require.True(t, ok)
		assert.Equal(t, "a-mapped", mapped.key)
		AssertCalled(t, mapper, 1)
	})
}

func TestChaosOperation(t *testing.T) {
	inner := faultz.Transform(func(_ context.Context, n int) int { return n })

	t.Run("Never Injects With Zero Rates", func(t *testing.T) {
		chaos := NewChaosOperation[int, int, faultz.Never]("calm", inner, nil, ChaosConfig{Seed: 1})
		for i := 0; i < 50; i++ {
			result, err := chaos.Invoke(context.Background(), i)
			require.NoError(t, err)
			require.Equal(t, i, result)
		}
		stats := chaos.Stats()
		assert.Equal(t, int64(50), stats.TotalCalls)
		assert.Zero(t, stats.DeclaredCalls+stats.UndeclaredCalls+stats.PanicCalls)
	})

	t.Run("Always Injects Undeclared", func(t *testing.T) {
		chaos := NewChaosOperation[int, int, faultz.Never]("broken", inner, nil, ChaosConfig{UndeclaredRate: 1, Seed: 1})
		_, err := chaos.Operation()(context.Background(), 1)
		assert.True(t, errors.Is(err, ErrChaos))
		assert.Contains(t, chaos.Stats().String(), "Undeclared: 1")
	})

	t.Run("Always Injects Declared", func(t *testing.T) {
		declared := &lookupError{key: "chaos"}
		wrapped := faultz.Apply[*lookupError](func(_ context.Context, n int) (int, error) { return n, nil })
		chaos := NewChaosOperation("flaky", wrapped, func() *lookupError { return declared }, ChaosConfig{DeclaredRate: 1, Seed: 1})

		_, err := chaos.Invoke(context.Background(), 1)
		AssertSameError(t, declared, err)
	})

	t.Run("Always Panics", func(t *testing.T) {
		chaos := NewChaosOperation[int, int, faultz.Never]("explosive", inner, nil, ChaosConfig{PanicRate: 1, Seed: 1})
		recovered := CapturePanic(func() {
			_, _ = chaos.Invoke(context.Background(), 1)
		})
		assert.Equal(t, "chaos: injected panic in explosive", recovered)
	})
}

func TestParallelTest(t *testing.T) {
	var count int64
	ParallelTest(t, 8, func(int) {
		atomic.AddInt64(&count, 1)
	})
	assert.Equal(t, int64(8), count)
}
