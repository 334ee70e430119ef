package faultz

import "context"

// Handler turns a declared failure of type E into a result.
type Handler[E error, R any] func(context.Context, E) (R, error)

// HandleDeclared recovers declared failures of op through handler.
//
// On a declared failure e, handler(e) supplies the composed result. If the
// handler fails, its error becomes the outcome; a handler error satisfying F
// is a declared failure of the composed operation. Undeclared failures of op
// bypass the handler entirely.
//
// F must be narrower than error; HandleDeclared panics with a
// *ContractViolation otherwise. F cannot be inferred from a handler, so it
// is given explicitly:
//
//	withDefault := faultz.HandleDeclared[*StoreError](lookup,
//	    func(ctx context.Context, err *NotFoundError) (Profile, error) {
//	        return store.DefaultProfile(ctx, err.Key)
//	    },
//	)
func HandleDeclared[F error, A, R any, E error](op Operation[A, R, E], handler Handler[E, R]) Operation[A, R, F] {
	require("HandleDeclared", "operation", op != nil)
	require("HandleDeclared", "handler", handler != nil)
	requireNarrow[F]("HandleDeclared")
	return Operation[A, R, F](handle(op, handler))
}

// HandleUndeclared recovers declared failures of op through handler and
// returns an operation that declares nothing: a failing handler can only fail
// undeclared. Undeclared failures of op bypass the handler entirely.
func HandleUndeclared[A, R any, E error](op Operation[A, R, E], handler Handler[E, R]) Operation[A, R, Never] {
	require("HandleUndeclared", "operation", op != nil)
	require("HandleUndeclared", "handler", handler != nil)
	return Operation[A, R, Never](handle(op, handler))
}

func handle[A, R any, E error](op Operation[A, R, E], handler Handler[E, R]) func(context.Context, A) (R, error) {
	return func(ctx context.Context, args A) (R, error) {
		result, err := op(ctx, args)
		declared, channel := Classify[E](err)
		if channel != DeclaredChannel {
			return result, err
		}
		return handler(ctx, declared)
	}
}
