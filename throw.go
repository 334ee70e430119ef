package faultz

import (
	"context"
	"reflect"
)

// Mapper turns a declared failure of type E into a failure of type F.
// A mapper that returns an error, or panics, replaces the original failure
// with its own.
type Mapper[E, F error] func(context.Context, E) (F, error)

// ThrowAsDeclared rewrites declared failures of op through mapper.
//
// On success the result passes through. On a declared failure e, the composed
// operation fails with mapper(e), declared as F. If the mapper itself fails,
// its error replaces e on whichever channel it belongs to. A mapper that
// returns neither a failure nor an error leaves e carried in a *Carrier.
// Undeclared failures are returned unchanged and the mapper is never called.
//
// Example:
//
//	toDomain := faultz.ThrowAsDeclared(query,
//	    func(_ context.Context, err *QueryError) (*NotFoundError, error) {
//	        return &NotFoundError{Key: err.Table, Cause: err}, nil
//	    },
//	)
func ThrowAsDeclared[A, R any, E, F error](op Operation[A, R, E], mapper Mapper[E, F]) Operation[A, R, F] {
	require("ThrowAsDeclared", "operation", op != nil)
	require("ThrowAsDeclared", "mapper", mapper != nil)
	requireNarrow[F]("ThrowAsDeclared")

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		declared, channel := Classify[E](err)
		if channel != DeclaredChannel {
			return result, err
		}
		var zero R
		mapped, mapErr := mapper(ctx, declared)
		if mapErr != nil {
			return zero, mapErr
		}
		if isNil(mapped) {
			return zero, Wrap(declared)
		}
		return zero, mapped
	}
}

// ThrowAsUndeclared rewrites declared failures of op through mapper and
// returns an operation that declares nothing: whatever the mapper produces,
// or fails with, reaches the caller as an undeclared failure. A nil mapping
// leaves the original failure carried in a *Carrier. Undeclared
// failures of op are returned unchanged and the mapper is never called.
func ThrowAsUndeclared[A, R any, E error](op Operation[A, R, E], mapper func(context.Context, E) error) Operation[A, R, Never] {
	require("ThrowAsUndeclared", "operation", op != nil)
	require("ThrowAsUndeclared", "mapper", mapper != nil)

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		declared, channel := Classify[E](err)
		if channel != DeclaredChannel {
			return result, err
		}
		var zero R
		if mapped := mapper(ctx, declared); !isNil(mapped) {
			return zero, mapped
		}
		return zero, Wrap(declared)
	}
}

// isNil reports whether a mapped failure is absent. A typed nil pointer
// counts as absent.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
