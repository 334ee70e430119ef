package faultz

import (
	"context"
	"strings"
	"testing"
)

func TestTransform(t *testing.T) {
	t.Run("Transform Success", func(t *testing.T) {
		upper := Transform(func(_ context.Context, s string) string {
			return strings.ToUpper(s)
		})

		result, err := upper(context.Background(), "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "HELLO" {
			t.Errorf("expected HELLO, got %q", result)
		}
	})

	t.Run("Transform Panic Is Not Recovered", func(t *testing.T) {
		explode := Transform(func(_ context.Context, _ int) int {
			panic("transform defect")
		})

		recovered := capturePanic(func() { _, _ = explode(context.Background(), 1) })
		if recovered != "transform defect" {
			t.Errorf("expected panic to propagate, got %v", recovered)
		}
	})

	t.Run("Transform Composes With Fallbacks", func(t *testing.T) {
		double := Transform(func(_ context.Context, n int) int { return n * 2 })
		op := OnErrorReturn(double, -1)

		result, err := op(context.Background(), 21)
		if err != nil || result != 42 {
			t.Errorf("expected 42, got %d %v", result, err)
		}
	})
}
