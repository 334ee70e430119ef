package faultz

import "context"

// Operation is a computation of an argument of type A producing a result of
// type R. E is the declared failure type: a returned error whose dynamic type
// satisfies E is a declared failure, any other error or panic is undeclared.
//
// Operations are plain function values. Combinators never modify an operation,
// they return a new one that calls it.
//
// Key design principles:
//   - One terminal outcome per invocation: success, declared or undeclared
//   - Declared failures are matched on the top-level error only
//   - A *Carrier is never declared, whatever E is
//   - Context is passed through untouched; no combinator cancels or times out
type Operation[A, R any, E error] func(context.Context, A) (R, error)

// Invoke runs the operation with the given argument.
func (op Operation[A, R, E]) Invoke(ctx context.Context, args A) (R, error) {
	return op(ctx, args)
}

// Never is the declared failure type of an unconstrained operation.
// Its unexported method keeps every type outside this package from satisfying
// it, so Operation[A, R, Never] can only ever fail undeclared.
type Never interface {
	error
	never()
}

// Void is the result (or argument) of shapes that have none.
type Void = struct{}
