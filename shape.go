package faultz

import "context"

// Supply creates a supplier: an operation with no argument.
func Supply[E error, R any](fn func(context.Context) (R, error)) Operation[Void, R, E] {
	require("Supply", "function", fn != nil)
	return func(ctx context.Context, _ Void) (R, error) {
		return fn(ctx)
	}
}

// Run creates a runnable: an operation with neither argument nor result.
func Run[E error](fn func(context.Context) error) Operation[Void, Void, E] {
	require("Run", "function", fn != nil)
	return func(ctx context.Context, _ Void) (Void, error) {
		return Void{}, fn(ctx)
	}
}

// Test creates a predicate.
func Test[E error, A any](fn func(context.Context, A) (bool, error)) Operation[A, bool, E] {
	require("Test", "function", fn != nil)
	return fn
}

// Pair is the argument of a two-argument operation.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf builds a Pair.
func PairOf[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

// Combine creates a two-argument operation. Binary operators are the case
// where A, B and R are the same type.
func Combine[E error, A, B, R any](fn func(context.Context, A, B) (R, error)) Operation[Pair[A, B], R, E] {
	require("Combine", "function", fn != nil)
	return func(ctx context.Context, args Pair[A, B]) (R, error) {
		return fn(ctx, args.First, args.Second)
	}
}

// Bind fixes the argument of op, producing a supplier.
func Bind[A, R any, E error](op Operation[A, R, E], args A) Operation[Void, R, E] {
	require("Bind", "operation", op != nil)
	return func(ctx context.Context, _ Void) (R, error) {
		return op(ctx, args)
	}
}

// Then runs second on the result of first. Both share the declared failure
// type; the first failure of either stops the chain and is returned as is.
func Then[A, B, C any, E error](first Operation[A, B, E], second Operation[B, C, E]) Operation[A, C, E] {
	require("Then", "first operation", first != nil)
	require("Then", "second operation", second != nil)
	return func(ctx context.Context, args A) (C, error) {
		intermediate, err := first(ctx, args)
		if err != nil {
			var zero C
			return zero, err
		}
		return second(ctx, intermediate)
	}
}
