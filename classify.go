package faultz

// Channel identifies which of the three outcomes an invocation produced.
type Channel uint8

const (
	// Success means the operation returned a nil error.
	Success Channel = iota
	// DeclaredChannel means the error satisfies the declared failure type.
	DeclaredChannel
	// UndeclaredChannel means any other error, including every *Carrier.
	UndeclaredChannel
)

// String returns the channel name used in span tags and log fields.
func (c Channel) String() string {
	switch c {
	case Success:
		return "success"
	case DeclaredChannel:
		return "declared"
	case UndeclaredChannel:
		return "undeclared"
	default:
		return "unknown"
	}
}

// Classify sorts err onto a channel for the declared failure type E.
// On the declared channel the returned E is err itself, with its dynamic type
// intact. Only the top-level error is inspected: a declared value wrapped
// inside another error, a *Carrier in particular, stays undeclared.
func Classify[E error](err error) (E, Channel) {
	var zero E
	if err == nil {
		return zero, Success
	}
	if _, ok := err.(*Carrier); ok {
		return zero, UndeclaredChannel
	}
	if declared, ok := err.(E); ok {
		return declared, DeclaredChannel
	}
	return zero, UndeclaredChannel
}

// Declared reports whether err is a declared failure of type E and returns it.
func Declared[E error](err error) (E, bool) {
	declared, channel := Classify[E](err)
	return declared, channel == DeclaredChannel
}
