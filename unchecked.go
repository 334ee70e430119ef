package faultz

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// Unchecked converts op into an operation that declares nothing. Every
// declared failure is wrapped in a *Carrier whose message is the failure's
// own; undeclared failures, carriers included, pass through as they are.
//
// Unchecked is idempotent: converting an operation that already declares
// Never has nothing left to wrap.
//
// Example:
//
//	// worker.Submit only accepts operations that cannot fail declared.
//	worker.Submit(faultz.Unchecked(sendInvoice))
func Unchecked[A, R any, E error](op Operation[A, R, E]) Operation[A, R, Never] {
	require("Unchecked", "operation", op != nil)
	return ThrowAsUndeclared(op, func(ctx context.Context, declared E) error {
		return mint(ctx, Wrap(declared))
	})
}

// UncheckedWithMessage behaves like Unchecked but gives every carrier the
// diagnostic message instead of the cause's own. An empty message keeps the
// cause's own, as with WrapWithMessage.
func UncheckedWithMessage[A, R any, E error](op Operation[A, R, E], message string) Operation[A, R, Never] {
	require("UncheckedWithMessage", "operation", op != nil)
	return ThrowAsUndeclared(op, func(ctx context.Context, declared E) error {
		return mint(ctx, WrapWithMessage(declared, message))
	})
}

// UncheckedFunc converts a plain function into an operation that declares
// nothing. Every error fn returns is treated as declared and carried, except
// a *Carrier, which is returned as it is.
func UncheckedFunc[A, R any](fn func(context.Context, A) (R, error)) Operation[A, R, Never] {
	require("UncheckedFunc", "function", fn != nil)
	return Unchecked(Operation[A, R, error](fn))
}

func mint(ctx context.Context, carrier *Carrier) *Carrier {
	capitan.Info(ctx, SignalCarrierMinted,
		FieldError.Field(carrier.Error()),
		FieldCauseType.Field(fmt.Sprintf("%T", carrier.cause)),
	)
	return carrier
}
