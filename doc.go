// Package blazingagi implements a FastAGI server: a TCP listener that
// speaks Asterisk's AGI-over-the-network protocol, dispatching each
// connection's handshake to a handler selected by URI-pattern routing.
//
// The wire-level pieces live in dedicated packages (agiparse for
// framing, connection for the per-socket state machine, command for
// the typed AGI command set); this package ties them together into
// Serve, the accept loop that runs a *router.Router against incoming
// connections.
package blazingagi
