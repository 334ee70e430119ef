package faultz

import (
	"context"
	"testing"
)

func TestEffect(t *testing.T) {
	t.Run("Effect Success", func(t *testing.T) {
		var seen []int
		record := Effect[*StoreError](func(_ context.Context, n int) error {
			seen = append(seen, n)
			return nil
		})

		result, err := record(context.Background(), 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != (Void{}) {
			t.Errorf("expected Void result, got %v", result)
		}
		if len(seen) != 1 || seen[0] != 7 {
			t.Errorf("expected effect to see 7, got %v", seen)
		}
	})

	t.Run("Effect Declared Error", func(t *testing.T) {
		record := Effect[*StoreError](func(_ context.Context, _ int) error {
			return &StoreError{Op: "record", Cause: errDefect}
		})

		_, err := record(context.Background(), 1)
		if _, channel := Classify[*StoreError](err); channel != DeclaredChannel {
			t.Errorf("expected declared, got %s", channel)
		}
	})

	t.Run("Effect Undeclared Error", func(t *testing.T) {
		record := Effect[*StoreError](func(_ context.Context, _ int) error {
			return errDefect
		})

		_, err := record(context.Background(), 1)
		if _, channel := Classify[*StoreError](err); channel != UndeclaredChannel {
			t.Errorf("expected undeclared, got %s", channel)
		}
	})
}
