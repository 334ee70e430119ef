package faultz

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zoobzio/capitan"
)

// Checked converts op into an operation declaring E by recovering carried
// failures.
//
// When op fails with a *Carrier whose cause satisfies E, the composed
// operation fails declared with that cause, verbatim: an interface target
// accepts any implementation and the cause keeps its own dynamic type. A
// carrier whose cause does not satisfy E is returned as the same *Carrier, so
// a later Checked for another type can still recover it. Any other error is
// returned unchanged.
//
// Errors that are not carriers keep their identity and are classified
// against E downstream, so E must not be satisfiable by a defect. error
// itself is rejected with a *ContractViolation; a broader interface target
// such as interface{ error; Timeout() bool } is the caller's responsibility.
//
// E is given explicitly, the rest is inferred:
//
//	strict := faultz.Checked[*NotFoundError](loose)
func Checked[E error, A, R any, F error](op Operation[A, R, F]) Operation[A, R, E] {
	require("Checked", "operation", op != nil)
	requireNarrow[E]("Checked")

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		return result, recoverCarrier[E](ctx, err)
	}
}

// Assume converts op into an operation declaring E without matching: every
// carrier is unwrapped, on the caller's word that its cause is an E. Use it
// where E is the only thing that can have been carried.
func Assume[E error, A, R any, F error](op Operation[A, R, F]) Operation[A, R, E] {
	require("Assume", "operation", op != nil)
	requireNarrow[E]("Assume")

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		if cause, ok := CauseOf(err); ok {
			return result, cause
		}
		return result, err
	}
}

// InvokeAndUnwrap invokes op once and recovers a carried E the way Checked
// does, without building an operation.
func InvokeAndUnwrap[E error, A, R any, F error](ctx context.Context, op Operation[A, R, F], args A) (R, error) {
	require("InvokeAndUnwrap", "operation", op != nil)
	requireNarrow[E]("InvokeAndUnwrap")
	result, err := op(ctx, args)
	return result, recoverCarrier[E](ctx, err)
}

func recoverCarrier[E error](ctx context.Context, err error) error {
	carrier, ok := err.(*Carrier)
	if !ok {
		return err
	}
	target := reflect.TypeFor[E]().String()
	if _, ok := carrier.cause.(E); ok {
		capitan.Info(ctx, SignalCarrierRecovered,
			FieldTarget.Field(target),
			FieldCauseType.Field(fmt.Sprintf("%T", carrier.cause)),
		)
		return carrier.cause
	}
	capitan.Warn(ctx, SignalCarrierPassed,
		FieldTarget.Field(target),
		FieldCauseType.Field(fmt.Sprintf("%T", carrier.cause)),
		FieldError.Field(carrier.Error()),
	)
	return carrier
}
