// Package agiparse decodes the byte-level shapes Asterisk sends on a
// FastAGI TCP stream: the handshake opener, the variable dump, command
// replies, and the HANGUP sentinel.
package agiparse

import "fmt"

// ErrorKind classifies why a chunk of bytes failed to parse as an AGI
// message. Kept as a value (rather than distinct error types) so callers
// can switch on it while still getting a useful Error() string and an
// Unwrap() chain back to the underlying cause, if any.
type ErrorKind int

const (
	// NotAStatus: the input looked like it might be a status line (it
	// starts with a numeric code) but doesn't match the status grammar.
	NotAStatus ErrorKind = iota
	// NotAVariableDump: a "key: value" line inside a dump block didn't
	// contain the separator.
	NotAVariableDump
	// NotAnAGIMessage: the line matches none of the known shapes.
	NotAnAGIMessage
	// VariableDumpWithoutRequest: a key the dump must carry is absent:
	// neither agi_network_script nor agi_request appeared in the dump,
	// or (with Text naming it) the well-known key a Variables accessor
	// was asked to decode is missing.
	VariableDumpWithoutRequest
	// NetworkStartAfterOtherMessage: a second "agi_network: yes" arrived
	// after the connection had already progressed past it.
	NetworkStartAfterOtherMessage
	// ReadError: the underlying socket read failed, or the stream ended
	// before a full message could be assembled.
	ReadError
	// Utf8: the bytes are not valid UTF-8.
	Utf8
	// IntParse: a numeric field didn't parse as an integer.
	IntParse
	// URLParse: the request URI didn't parse as a URL.
	URLParse
)

func (k ErrorKind) String() string {
	switch k {
	case NotAStatus:
		return "NotAStatus"
	case NotAVariableDump:
		return "NotAVariableDump"
	case NotAnAGIMessage:
		return "NotAnAGIMessage"
	case VariableDumpWithoutRequest:
		return "VariableDumpWithoutRequest"
	case NetworkStartAfterOtherMessage:
		return "NetworkStartAfterOtherMessage"
	case ReadError:
		return "ReadError"
	case Utf8:
		return "Utf8"
	case IntParse:
		return "IntParse"
	case URLParse:
		return "URLParse"
	default:
		return "Unknown"
	}
}

// ParseError is the single error type returned by everything in this
// package. Text carries the offending decoded message (when there is
// one worth showing); Err carries a wrapped cause (when the failure
// originated in strconv, url.Parse, a socket read, etc).
type ParseError struct {
	Kind ErrorKind
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case NotAStatus:
		return fmt.Sprintf("not a status line: %q", e.Text)
	case NotAVariableDump:
		return fmt.Sprintf("not a variable dump line: %q", e.Text)
	case NotAnAGIMessage:
		return fmt.Sprintf("not a known AGI message: %q", e.Text)
	case VariableDumpWithoutRequest:
		if e.Text != "" {
			return fmt.Sprintf("variable dump is missing %s", e.Text)
		}
		return "variable dump is missing agi_network_script/agi_request"
	case NetworkStartAfterOtherMessage:
		return fmt.Sprintf("agi_network: yes received after another message: %q", e.Text)
	case ReadError:
		if e.Err != nil {
			return fmt.Sprintf("failed to read a complete message: %s", e.Err)
		}
		return "failed to read a complete message"
	case Utf8:
		return fmt.Sprintf("input is not valid utf-8: %q", e.Text)
	case IntParse:
		return fmt.Sprintf("not parsable as an integer: %q", e.Text)
	case URLParse:
		return fmt.Sprintf("not parsable as a URL: %q", e.Text)
	default:
		return fmt.Sprintf("parse error (%s): %q", e.Kind, e.Text)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
