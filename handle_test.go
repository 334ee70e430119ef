package faultz

import (
	"context"
	"testing"
)

func TestHandleDeclared(t *testing.T) {
	ctx := context.Background()

	t.Run("Handler Supplies Result", func(t *testing.T) {
		var c counter
		op := HandleDeclared[*StoreError](failing[*NotFoundError, string, string](&c, &NotFoundError{Key: "a"}),
			func(_ context.Context, e *NotFoundError) (string, error) {
				return "default-" + e.Key, nil
			})

		result, err := op(ctx, "a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "default-a" {
			t.Errorf("expected default-a, got %q", result)
		}
	})

	t.Run("Handler Failure Is Declared When It Matches", func(t *testing.T) {
		var c counter
		op := HandleDeclared[*StoreError](failing[*NotFoundError, string, string](&c, &NotFoundError{Key: "a"}),
			func(_ context.Context, e *NotFoundError) (string, error) {
				return "", &StoreError{Op: "fallback", Cause: e}
			})

		_, err := op(ctx, "a")
		if _, channel := Classify[*StoreError](err); channel != DeclaredChannel {
			t.Errorf("expected declared, got %s", channel)
		}
	})

	t.Run("Handler Failure Is Undeclared Otherwise", func(t *testing.T) {
		var c counter
		op := HandleDeclared[*StoreError](failing[*NotFoundError, string, string](&c, &NotFoundError{Key: "a"}),
			func(_ context.Context, _ *NotFoundError) (string, error) {
				return "", errDefect
			})

		_, err := op(ctx, "a")
		if err != errDefect {
			t.Fatalf("expected handler error, got %v", err)
		}
		if _, channel := Classify[*StoreError](err); channel != UndeclaredChannel {
			t.Errorf("expected undeclared, got %s", channel)
		}
	})

	t.Run("Undeclared Failure Bypasses Handler", func(t *testing.T) {
		var c, h counter
		op := HandleDeclared[*StoreError](failing[*NotFoundError, string, string](&c, errDefect),
			func(_ context.Context, _ *NotFoundError) (string, error) {
				h.hit()
				return "handled", nil
			})

		if _, err := op(ctx, "a"); err != errDefect {
			t.Errorf("expected the identical undeclared error, got %v", err)
		}
		if h.count() != 0 {
			t.Error("handler should not run")
		}
	})

	t.Run("Carried Declared Type Bypasses Handler", func(t *testing.T) {
		var c, h counter
		carrier := Wrap(&NotFoundError{Key: "a"})
		op := HandleDeclared[*StoreError](failing[*NotFoundError, string, string](&c, carrier),
			func(_ context.Context, _ *NotFoundError) (string, error) {
				h.hit()
				return "handled", nil
			})

		if _, err := op(ctx, "a"); err != error(carrier) {
			t.Errorf("expected the same carrier, got %v", err)
		}
		if h.count() != 0 {
			t.Error("handler should not run for a carrier")
		}
	})

	t.Run("Success Skips Handler", func(t *testing.T) {
		var c, h counter
		op := HandleDeclared[*StoreError](succeeding[*NotFoundError, string](&c, "value"),
			func(_ context.Context, _ *NotFoundError) (string, error) {
				h.hit()
				return "handled", nil
			})

		result, err := op(ctx, "a")
		if err != nil || result != "value" {
			t.Errorf("expected value, got %q %v", result, err)
		}
		if h.count() != 0 {
			t.Error("handler should not run on success")
		}
	})

	t.Run("Handler Receives Interface Target With Dynamic Type", func(t *testing.T) {
		var c counter
		op := HandleDeclared[Never](failing[TemporaryError, string, string](&c, &TimeoutError{Op: "dial"}),
			func(_ context.Context, e TemporaryError) (string, error) {
				if timeout, ok := e.(*TimeoutError); ok {
					return "retry " + timeout.Op, nil
				}
				return "", errDefect
			})

		result, err := op(ctx, "a")
		if err != nil || result != "retry dial" {
			t.Errorf("expected retry dial, got %q %v", result, err)
		}
	})

	t.Run("Nil Handler Is A Contract Violation", func(t *testing.T) {
		var c counter
		recovered := capturePanic(func() {
			HandleDeclared[*StoreError](succeeding[*NotFoundError, string](&c, "x"), nil)
		})
		if v, ok := recovered.(*ContractViolation); !ok || v.Combinator != "HandleDeclared" {
			t.Errorf("expected HandleDeclared violation, got %v", recovered)
		}
	})
}

func TestHandleUndeclared(t *testing.T) {
	ctx := context.Background()

	t.Run("Handler Supplies Result", func(t *testing.T) {
		var c counter
		op := HandleUndeclared(failing[*NotFoundError, string, int](&c, &NotFoundError{Key: "a"}),
			func(_ context.Context, _ *NotFoundError) (int, error) {
				return -1, nil
			})

		result, err := op(ctx, "a")
		if err != nil || result != -1 {
			t.Errorf("expected -1, got %d %v", result, err)
		}
	})

	t.Run("Handler Failure Is Always Undeclared", func(t *testing.T) {
		var c counter
		op := HandleUndeclared(failing[*NotFoundError, string, int](&c, &NotFoundError{Key: "a"}),
			func(_ context.Context, e *NotFoundError) (int, error) {
				return 0, e
			})

		_, err := op(ctx, "a")
		if _, channel := Classify[Never](err); channel != UndeclaredChannel {
			t.Errorf("expected undeclared, got %s", channel)
		}
	})

	t.Run("Panic In Handler Propagates", func(t *testing.T) {
		var c counter
		op := HandleUndeclared(failing[*NotFoundError, string, int](&c, &NotFoundError{Key: "a"}),
			func(_ context.Context, _ *NotFoundError) (int, error) {
				panic("handler exploded")
			})

		if recovered := capturePanic(func() { _, _ = op(ctx, "a") }); recovered != "handler exploded" {
			t.Errorf("expected handler panic, got %v", recovered)
		}
	})
}
