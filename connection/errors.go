package connection

import (
	"fmt"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// AGIErrorKind classifies what stage of a command/reply exchange
// failed. The root package re-exports this type (and AGIError) as its
// own public error surface, since AGIError is what a Handler returns.
type AGIErrorKind int

const (
	// InnerError wraps a fault in a command's own ParseReply, or one a
	// handler raises for its own reasons.
	InnerError AGIErrorKind = iota
	// Not200 means the connection replied to a command with a Status
	// whose code was not 200; Status carries the reply as-is.
	Not200
	// ParseError wraps a failure from the agiparse package.
	ParseError
	// IOError wraps a failure reading from or writing to the socket.
	IOError
)

func (k AGIErrorKind) String() string {
	switch k {
	case InnerError:
		return "InnerError"
	case Not200:
		return "Not200"
	case ParseError:
		return "ParseError"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// AGIError is the single error type a Handler returns. It always
// carries a Kind, and either a wrapped cause (InnerError/ParseError/
// IOError) or a Status (Not200).
type AGIError struct {
	Kind   AGIErrorKind
	Status *agiparse.Status
	Err    error
}

func (e *AGIError) Error() string {
	switch e.Kind {
	case Not200:
		return fmt.Sprintf("expected status 200, got %+v", e.Status)
	case InnerError:
		return fmt.Sprintf("handler error: %s", e.Err)
	case ParseError:
		return fmt.Sprintf("parse error: %s", e.Err)
	case IOError:
		return fmt.Sprintf("i/o error: %s", e.Err)
	default:
		return fmt.Sprintf("agi error (%s)", e.Kind)
	}
}

func (e *AGIError) Unwrap() error { return e.Err }
