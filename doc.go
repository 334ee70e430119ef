// Package faultz provides a small, type-safe combinator algebra for operations
// that fail in one of two ways.
//
// # Overview
//
// An Operation[A, R, E] is a function of a context and an argument that returns
// a result or an error. The type parameter E names the operation's declared
// failure type: a returned error whose dynamic type satisfies E is a declared
// failure, anything else (and any panic) is an undeclared failure.
//
// Declared failures are anticipated outcomes that callers are expected to deal
// with. Undeclared failures are defects. Every combinator in this package may
// intercept, map, handle or recover from declared failures, and none of them
// ever touches an undeclared failure: it reaches the caller as the identical
// value it was raised with.
//
// # Core Concepts
//
//   - Operation[A, R, E]: the invocation contract used by every combinator
//   - Never: the declared type of an unconstrained operation (nothing satisfies it)
//   - Carrier: an undeclared error that ferries a declared failure across a
//     boundary that declares none
//   - Classify: sorts an error onto the success, declared or undeclared channel
//
// # Adapter Functions
//
// Adapters wrap plain functions as operations:
//
//   - Apply: a function that may fail with E
//   - Transform: a function that cannot fail
//   - Effect: an effect-only function (result Void)
//   - Supply, Run, Test, Combine: supplier, runnable, predicate and
//     two-argument shapes
//
// # Combinators
//
//	ThrowAsDeclared     map a declared failure to another declared failure
//	ThrowAsUndeclared   map a declared failure onto the undeclared channel
//	HandleDeclared      turn a declared failure into a result (handler may fail with F)
//	HandleUndeclared    turn a declared failure into a result (handler fails undeclared)
//	OnErrorApply        invoke a fallback operation with the same argument
//	OnErrorGet          invoke a fallback supplier
//	OnErrorReturn       substitute a constant
//	OnErrorDiscard      complete an effect-only operation as success
//
// # Crossing Boundaries
//
// Unchecked converts an operation into one declaring Never by wrapping every
// declared failure in a *Carrier. Checked converts it back:
//
//	load := faultz.Apply[*NotFoundError](repo.Load)
//
//	// Hand the operation to code that only accepts unconstrained operations.
//	loose := faultz.Unchecked(load)
//
//	// Later, recover the declared failure with its exact dynamic type.
//	strict := faultz.Checked[*NotFoundError](loose)
//	_, err := strict(ctx, "user-42")
//	if nf, ok := faultz.Declared[*NotFoundError](err); ok {
//	    log.Printf("missing %s", nf.Key)
//	}
//
// A carrier whose cause does not satisfy the requested type passes through
// Checked untouched, so another Checked further out can still recover it.
//
// # Observation
//
// Monitor wraps an operation with metrics, tracing and hook events without
// changing any outcome:
//
//	monitor := faultz.NewMonitor("load-user", strict)
//	defer monitor.Close()
//	monitor.OnUndeclared(func(ctx context.Context, event faultz.MonitorEvent) error {
//	    alert.Page("defect in %s: %v", event.Name, event.Error)
//	    return nil
//	})
//
// # Contract Violations
//
// Every constructor panics with a *ContractViolation when it is given a nil
// operation, mapper, handler, fallback or supplier. The panic happens when the
// combinator is built, never when the composed operation runs.
//
// Combinators that produce a declared type (ThrowAsDeclared, HandleDeclared,
// OnErrorApply, OnErrorGet, Checked, Assume and InvokeAndUnwrap) also panic
// when that type is error itself: every defect satisfies error, so it would
// land on the declared channel and the next fallback would swallow it.
// Interface targets are accepted, but should be ones a defect cannot satisfy.
package faultz
