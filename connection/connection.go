// Package connection wraps a single accepted TCP stream: it reassembles
// AGI messages out of arbitrarily segmented reads and sequences
// commands against the replies they provoke.
package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/curatorsigma/blazing-agi/agiparse"
)

// FastAGIEnd is returned by ReadMessage when the peer closed the
// connection cleanly with no partial message pending. It is not one of
// agiparse.Message's shapes: the parser never produces it, only a
// Connection's end-of-stream bookkeeping does.
type FastAGIEnd struct{}

// connState tracks where in the fixed NetworkStart -> VariableDump ->
// (Status | Hangup)* sequence this connection currently is, so a
// second handshake line or an out-of-order dump can be rejected.
type connState int

const (
	stateFresh connState = iota
	stateAwaitDump
	stateReady
)

// Connection is a single accepted AGI stream. It is not safe for
// concurrent use: a handler drives ReadMessage/SendCommand from one
// goroutine, matching the strictly half-duplex request/reply
// discipline the protocol requires.
type Connection struct {
	conn  net.Conn
	buf   *bytebufferpool.ByteBuffer
	queue []agiparse.Message

	state  connState
	hungUp bool
}

var bufPool bytebufferpool.Pool

// New wraps an already-accepted net.Conn.
func New(conn net.Conn) *Connection {
	return &Connection{
		conn:  conn,
		buf:   bufPool.Get(),
		queue: make([]agiparse.Message, 0, 2),
		state: stateFresh,
	}
}

// Close releases the buffer back to its pool and closes the underlying
// socket.
func (c *Connection) Close() error {
	bufPool.Put(c.buf)
	return c.conn.Close()
}

// HungUp reports whether a Hangup message has been observed on this
// connection so far.
func (c *Connection) HungUp() bool {
	return c.hungUp
}

// Command is anything that can be serialized as a line of AGI command
// text and can interpret the Status that comes back as its own
// strongly typed reply.
type Command[R any] interface {
	fmt.Stringer
	ParseReply(status agiparse.Status) (R, error)
}

// ErrConnectionClosed marks the peer closing the stream. ReadMessage
// reports a close with nothing buffered as FastAGIEnd; a close with a
// partial message still buffered comes back as a ReadError wrapping
// ErrConnectionClosed, which SendCommand passes on inside its AGIError.
var ErrConnectionClosed = errors.New("connection closed")

// SendCommand writes cmd's wire form, then reads messages until a
// Status arrives, silently consuming any Hangup lines in between (they
// only set the sticky flag ReadMessage already maintains). It is the
// single synchronization point a handler suspends on; nothing here is
// buffered past one reply per call, matching the protocol's strictly
// half-duplex command/reply pairing. A sticky hangup observed before
// this call does not stop the command from being sent — Asterisk still
// accepts it and answers with a 511 status once the channel is dead.
//
// A Status whose code is not 200 is surfaced as *AGIError{Kind: Not200}
// without ever reaching cmd.ParseReply, matching the built-in commands'
// assumption that they only interpret a successful reply's result.
func SendCommand[R any](ctx context.Context, c *Connection, cmd Command[R]) (R, error) {
	var zero R
	line := cmd.String()
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if _, err := c.conn.Write([]byte(line)); err != nil {
		return zero, &AGIError{Kind: IOError, Err: err}
	}

	for {
		msg, err := c.ReadMessage(ctx)
		if err != nil {
			var pe *agiparse.ParseError
			if errors.As(err, &pe) && pe.Kind != agiparse.ReadError {
				return zero, &AGIError{Kind: ParseError, Err: err}
			}
			return zero, &AGIError{Kind: IOError, Err: err}
		}
		switch m := msg.(type) {
		case agiparse.Hangup:
			continue
		case agiparse.Status:
			if m.Code != 200 {
				status := m
				return zero, &AGIError{Kind: Not200, Status: &status}
			}
			reply, err := cmd.ParseReply(m)
			if err != nil {
				return zero, &AGIError{Kind: InnerError, Err: err}
			}
			return reply, nil
		default:
			return zero, &AGIError{Kind: ParseError, Err: fmt.Errorf("expected a status reply, got %T", msg)}
		}
	}
}

// ReadMessage returns the next parsed message, blocking on further
// socket reads as needed. Hangup is returned like any other message;
// SendCommand is the only caller that treats it as transparent. The
// sticky flag it sets here is purely informational bookkeeping for
// the connection's own state.
func (c *Connection) ReadMessage(ctx context.Context) (agiparse.Message, error) {
	for {
		if len(c.queue) > 0 {
			msg := c.queue[0]
			c.queue = c.queue[1:]
			if _, ok := msg.(agiparse.Hangup); ok {
				c.hungUp = true
			}
			return msg, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		n, fillErr := c.fill()
		if n > 0 {
			msgs, err := c.extractMessages()
			if err != nil {
				return nil, err
			}
			c.queue = append(c.queue, msgs...)
		}

		if fillErr != nil {
			if len(c.queue) > 0 {
				// A message completed in the same read that also
				// reported the peer going away; deliver it before
				// surfacing the close.
				continue
			}
			if errors.Is(fillErr, ErrConnectionClosed) && c.buf.Len() == 0 {
				return FastAGIEnd{}, nil
			}
			return nil, &agiparse.ParseError{Kind: agiparse.ReadError, Err: fillErr}
		}
	}
}

// fill performs one read off the socket and appends whatever arrived
// to the resident buffer. End of stream is reported as
// ErrConnectionClosed; any other read failure is returned as is.
func (c *Connection) fill() (int, error) {
	tmp := make([]byte, 4096)
	n, err := c.conn.Read(tmp)
	if n > 0 {
		c.buf.Write(tmp[:n])
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, fmt.Errorf("%w: %s", ErrConnectionClosed, err)
		}
		return n, err
	}
	return n, nil
}

// extractMessages strips as many complete messages as possible off the
// front of the resident buffer, dispatching on connState so a
// variable dump (which spans lines until a blank one) is only
// attempted where the sequence expects one.
func (c *Connection) extractMessages() ([]agiparse.Message, error) {
	var out []agiparse.Message

	for {
		switch c.state {
		case stateFresh:
			line, ok := popLine(c.buf)
			if !ok {
				return out, nil
			}
			msg, err := agiparse.ParseLine(line)
			if err != nil {
				return out, err
			}
			if _, ok := msg.(agiparse.NetworkStart); !ok {
				return out, &agiparse.ParseError{Kind: agiparse.NotAnAGIMessage, Text: string(line)}
			}
			c.state = stateAwaitDump
			out = append(out, msg)

		case stateAwaitDump:
			block, ok := popVariableDumpBlock(c.buf)
			if !ok {
				return out, nil
			}
			dump, err := agiparse.ParseVariableDump(block)
			if err != nil {
				return out, err
			}
			c.state = stateReady
			out = append(out, dump)

		case stateReady:
			line, ok := popLine(c.buf)
			if !ok {
				return out, nil
			}
			msg, err := agiparse.ParseLine(line)
			if err != nil {
				return out, err
			}
			if _, ok := msg.(agiparse.NetworkStart); ok {
				return out, &agiparse.ParseError{Kind: agiparse.NetworkStartAfterOtherMessage, Text: string(line)}
			}
			out = append(out, msg)
		}
	}
}

// popLine removes and returns the first complete "...\n" line from buf,
// or (nil, false) if none is buffered yet.
func popLine(buf *bytebufferpool.ByteBuffer) ([]byte, bool) {
	b := buf.Bytes()
	idx := indexByte(b, '\n')
	if idx < 0 {
		return nil, false
	}
	line := append([]byte(nil), b[:idx]...)
	rest := append([]byte(nil), b[idx+1:]...)
	buf.Reset()
	buf.Write(rest)
	return line, true
}

// popVariableDumpBlock removes and returns everything up to (and
// including) the newline ending the dump's last variable line, once a
// following blank line ("\n" or "\r\n") has arrived to terminate it.
// The blank line itself is consumed but not included in the block,
// since ParseVariableDump already ignores empty lines.
func popVariableDumpBlock(buf *bytebufferpool.ByteBuffer) ([]byte, bool) {
	b := buf.Bytes()
	for i := 0; i+1 < len(b); i++ {
		if b[i] != '\n' {
			continue
		}
		rest := b[i+1:]
		switch {
		case len(rest) >= 1 && rest[0] == '\n':
			block := append([]byte(nil), b[:i+1]...)
			tail := append([]byte(nil), b[i+2:]...)
			buf.Reset()
			buf.Write(tail)
			return block, true
		case len(rest) >= 2 && rest[0] == '\r' && rest[1] == '\n':
			block := append([]byte(nil), b[:i+1]...)
			tail := append([]byte(nil), b[i+3:]...)
			buf.Reset()
			buf.Write(tail)
			return block, true
		}
	}
	return nil, false
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
