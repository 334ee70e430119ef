package faultz

import (
	"fmt"
	"reflect"
)

// Carrier is an undeclared error that ferries exactly one declared failure
// across a boundary that declares none. Conversion creates carriers and
// Recovery unwraps them; until then a carrier is an ordinary undeclared error
// that every combinator passes through untouched.
//
// The cause is never itself a *Carrier.
type Carrier struct {
	cause   error
	message string
}

// Wrap returns a carrier for cause. Wrapping a carrier returns it unchanged.
// It panics with a *ContractViolation if cause is nil.
func Wrap(cause error) *Carrier {
	if cause == nil {
		panic(&ContractViolation{Combinator: "Wrap", Argument: "cause"})
	}
	if carrier, ok := cause.(*Carrier); ok {
		return carrier
	}
	return &Carrier{cause: cause}
}

// WrapWithMessage returns a carrier for cause whose message overrides the
// cause's own. Re-wrapping a carrier keeps its original cause.
//
// An empty message is the same as no override: Error falls back to the
// cause's message.
func WrapWithMessage(cause error, message string) *Carrier {
	if cause == nil {
		panic(&ContractViolation{Combinator: "WrapWithMessage", Argument: "cause"})
	}
	if carrier, ok := cause.(*Carrier); ok {
		cause = carrier.cause
	}
	return &Carrier{cause: cause, message: message}
}

// Error returns the override message, or the cause's message when none was given.
func (c *Carrier) Error() string {
	if c.message != "" {
		return c.message
	}
	return c.cause.Error()
}

// Unwrap returns the carried failure, supporting errors.Is and errors.As.
func (c *Carrier) Unwrap() error {
	return c.cause
}

// Cause returns the carried failure.
func (c *Carrier) Cause() error {
	return c.cause
}

// String describes the carrier and the dynamic type of its cause.
func (c *Carrier) String() string {
	return fmt.Sprintf("carrier(%T): %s", c.cause, c.Error())
}

// IsCarrier reports whether err is a *Carrier.
func IsCarrier(err error) bool {
	_, ok := err.(*Carrier)
	return ok
}

// CauseOf returns the failure carried by err when err is a *Carrier.
func CauseOf(err error) (error, bool) {
	carrier, ok := err.(*Carrier)
	if !ok {
		return nil, false
	}
	return carrier.cause, true
}

// ContractViolation is the panic value raised when a combinator is built
// with a missing argument or an unusable declared type.
type ContractViolation struct {
	Combinator string
	Argument   string
	Reason     string // set when the argument is present but unusable
}

// Error implements the error interface.
func (v *ContractViolation) Error() string {
	if v.Reason != "" {
		return fmt.Sprintf("faultz: %s requires %s", v.Combinator, v.Reason)
	}
	return fmt.Sprintf("faultz: %s requires a non-nil %s", v.Combinator, v.Argument)
}

// require panics with a *ContractViolation unless present is true.
func require(combinator, argument string, present bool) {
	if !present {
		panic(&ContractViolation{Combinator: combinator, Argument: argument})
	}
}

// requireNarrow panics with a *ContractViolation when F is error itself.
// Every error satisfies error, so a combinator producing it would move
// undeclared failures onto the declared channel.
func requireNarrow[F error](combinator string) {
	if reflect.TypeFor[F]() == reflect.TypeFor[error]() {
		panic(&ContractViolation{
			Combinator: combinator,
			Argument:   "declared type",
			Reason:     "a declared type narrower than error",
		})
	}
}
