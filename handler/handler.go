// Package handler defines the contract a FastAGI application implements:
// given the parsed handshake and exclusive access to the connection, do
// whatever the call requires and report success or failure.
package handler

import (
	"context"

	"github.com/curatorsigma/blazing-agi/agiparse"
	"github.com/curatorsigma/blazing-agi/command"
	"github.com/curatorsigma/blazing-agi/connection"
)

// Request carries the parsed handshake to a Handler: the variable dump
// Asterisk sent, and any path parameters the router's :name segments
// captured. It is read-only from the handler's perspective.
type Request struct {
	Variables agiparse.VariableDump
	Captures  map[string]string
}

// Handler is the single polymorphic operation a FastAGI application
// implements: given exclusive access to the connection and read access
// to the request, converse with the peer and report success or
// failure.
type Handler interface {
	Handle(ctx context.Context, conn *connection.Connection, req *Request) error
}

// HandlerFunc adapts a plain function to Handler, standing in for the
// crate's #[create_handler] proc-macro (Go has no macros): it is the
// only way to write a handler as a bare function instead of a type
// with a Handle method.
type HandlerFunc func(ctx context.Context, conn *connection.Connection, req *Request) error

func (f HandlerFunc) Handle(ctx context.Context, conn *connection.Connection, req *Request) error {
	return f(ctx, conn, req)
}

// AndThen runs First, and if it succeeds, runs Second.
type AndThen struct {
	First  Handler
	Second Handler
}

func (a AndThen) Handle(ctx context.Context, conn *connection.Connection, req *Request) error {
	if err := a.First.Handle(ctx, conn, req); err != nil {
		return err
	}
	return a.Second.Handle(ctx, conn, req)
}

// Fallback is invoked by the router when no route matches: it tells
// Asterisk (best-effort, via VERBOSE) that the request had no handler,
// then returns whatever error sending that VERBOSE produced (nil when
// it succeeded).
var Fallback Handler = HandlerFunc(func(ctx context.Context, conn *connection.Connection, _ *Request) error {
	_, err := connection.SendCommand(ctx, conn, command.NewVerbose("Route not found"))
	return err
})
