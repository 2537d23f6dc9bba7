package blazingagi

import "github.com/curatorsigma/blazing-agi/connection"

// AGIError and AGIErrorKind are re-exported from the connection
// package, where they must live to avoid an import cycle (connection
// constructs them directly; see DESIGN.md). This alias is purely for
// call-site ergonomics, the same way the crate's root module re-exports
// its own AGIError.
type AGIError = connection.AGIError
type AGIErrorKind = connection.AGIErrorKind

const (
	InnerError = connection.InnerError
	Not200     = connection.Not200
	ParseError = connection.ParseError
	IOError    = connection.IOError
)
