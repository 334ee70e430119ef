package faultz

import "context"

// OnErrorApply invokes fallback with the same argument when op fails declared.
// The fallback's outcome, whatever channel it is on, is the composed outcome.
// Undeclared failures of op are returned unchanged and the fallback never runs.
// The fallback must declare a type narrower than error.
//
// Example:
//
//	fetch := faultz.OnErrorApply(fromCache, fromDatabase)
func OnErrorApply[A, R any, E, F error](op Operation[A, R, E], fallback Operation[A, R, F]) Operation[A, R, F] {
	require("OnErrorApply", "operation", op != nil)
	require("OnErrorApply", "fallback", fallback != nil)
	requireNarrow[F]("OnErrorApply")

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		if _, channel := Classify[E](err); channel != DeclaredChannel {
			return result, err
		}
		return fallback(ctx, args)
	}
}

// OnErrorGet invokes supplier when op fails declared. The supplier ignores
// the original argument; build it with Supply.
//
// Example:
//
//	settings := faultz.OnErrorGet(loadSettings, faultz.Supply[*ConfigError](defaultSettings))
func OnErrorGet[A, R any, E, F error](op Operation[A, R, E], supplier Operation[Void, R, F]) Operation[A, R, F] {
	require("OnErrorGet", "operation", op != nil)
	require("OnErrorGet", "supplier", supplier != nil)
	requireNarrow[F]("OnErrorGet")

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		if _, channel := Classify[E](err); channel != DeclaredChannel {
			return result, err
		}
		return supplier(ctx, Void{})
	}
}

// OnErrorReturn substitutes value as the result when op fails declared.
// Nothing else runs. Undeclared failures of op are returned unchanged.
func OnErrorReturn[A, R any, E error](op Operation[A, R, E], value R) Operation[A, R, Never] {
	require("OnErrorReturn", "operation", op != nil)

	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		if _, channel := Classify[E](err); channel != DeclaredChannel {
			return result, err
		}
		return value, nil
	}
}
