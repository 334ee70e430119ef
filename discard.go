package faultz

import "context"

// OnErrorDiscard completes an effect-only operation as success when it fails
// declared. Whatever the effect did before failing stays done. Undeclared
// failures still propagate.
//
// This is the only combinator that suppresses a failure outright, and it only
// exists for operations whose result is Void.
func OnErrorDiscard[A any, E error](op Operation[A, Void, E]) Operation[A, Void, Never] {
	require("OnErrorDiscard", "operation", op != nil)

	return func(ctx context.Context, args A) (Void, error) {
		_, err := op(ctx, args)
		if _, channel := Classify[E](err); channel == UndeclaredChannel {
			return Void{}, err
		}
		return Void{}, nil
	}
}
