package faultz

import (
	"context"
)

// Effect creates an effect-only Operation: fn acts on its argument and
// produces no result. Effect operations are the only ones OnErrorDiscard
// accepts.
//
// Example:
//
//	audit := faultz.Effect[*AuditError](func(ctx context.Context, p Payment) error {
//	    return auditLog.Record(ctx, "payment_processed", p.ID)
//	})
//	bestEffort := faultz.OnErrorDiscard(audit)
func Effect[E error, A any](fn func(context.Context, A) error) Operation[A, Void, E] {
	require("Effect", "function", fn != nil)
	return func(ctx context.Context, args A) (Void, error) {
		return Void{}, fn(ctx, args)
	}
}
