package faultz

import "github.com/zoobzio/capitan"

// Signal definitions for faultz events.
// Signals follow the pattern: <component>.<event>.
var (
	// Carrier signals.
	SignalCarrierMinted = capitan.NewSignal(
		"carrier.minted",
		"A declared failure was wrapped in a carrier to cross an unconstrained boundary",
	)
	SignalCarrierRecovered = capitan.NewSignal(
		"carrier.recovered",
		"A carrier was unwrapped and its cause restored as a declared failure",
	)
	SignalCarrierPassed = capitan.NewSignal(
		"carrier.passed",
		"A carrier did not match the recovery target and was passed through intact",
	)

	// Monitor signals.
	SignalMonitorDeclared = capitan.NewSignal(
		"monitor.declared",
		"A monitored operation failed with a declared failure",
	)
	SignalMonitorUndeclared = capitan.NewSignal(
		"monitor.undeclared",
		"A monitored operation failed with an undeclared failure or panicked",
	)
)

// Field keys using capitan primitive types.
var (
	FieldName      = capitan.NewStringKey("name")       // Monitor or combinator name
	FieldError     = capitan.NewStringKey("error")      // Error message
	FieldCauseType = capitan.NewStringKey("cause_type") // Dynamic type of a carried cause
	FieldTarget    = capitan.NewStringKey("target")     // Recovery target type
	FieldChannel   = capitan.NewStringKey("channel")    // Outcome channel
	FieldDuration  = capitan.NewFloat64Key("duration")  // Invocation time in seconds
)
