package faultz

import (
	"context"
)

// Transform creates an Operation from a function that cannot fail.
// The resulting operation declares Never; a panic in fn is still an
// undeclared failure and is not recovered.
//
// Example:
//
//	upper := faultz.Transform(func(_ context.Context, s string) string {
//	    return strings.ToUpper(s)
//	})
func Transform[A, R any](fn func(context.Context, A) R) Operation[A, R, Never] {
	require("Transform", "function", fn != nil)
	return func(ctx context.Context, args A) (R, error) {
		return fn(ctx, args), nil
	}
}
