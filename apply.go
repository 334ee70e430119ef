package faultz

import "context"

// Apply creates an Operation from a function that may fail with a declared
// failure of type E. Apply is the workhorse adapter: use it for parsing,
// lookups, validation and calls to other services.
//
// Only errors whose dynamic type satisfies E are declared. Anything else fn
// returns is undeclared and no combinator will touch it.
//
// Example:
//
//	parse := faultz.Apply[*strconv.NumError](func(_ context.Context, s string) (int, error) {
//	    n, err := strconv.Atoi(s)
//	    if err != nil {
//	        return 0, err.(*strconv.NumError)
//	    }
//	    return n, nil
//	})
func Apply[E error, A, R any](fn func(context.Context, A) (R, error)) Operation[A, R, E] {
	require("Apply", "function", fn != nil)
	return fn
}
