package middleware

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/curatorsigma/blazing-agi/command"
	"github.com/curatorsigma/blazing-agi/connection"
	"github.com/curatorsigma/blazing-agi/handler"
	"github.com/curatorsigma/blazing-agi/layer"
)

var (
	// ErrDigestDecode means Asterisk's evaluated digest string was not
	// valid hex.
	ErrDigestDecode = errors.New("digest: response was not decodable as hex")
	// ErrDigestMismatch means the digest Asterisk computed does not
	// match the one this side derived from secret.
	ErrDigestMismatch = errors.New("digest: response digest does not match")
)

// SHA1Digest returns a layer.Layer implementing challenge-response
// authentication over the FastAGI channel itself, with no external
// transport security: it issues a fresh nonce, asks Asterisk to
// evaluate SHA1(secret:nonce) as a channel expression (relying on the
// dialplan having set BLAZING_AGI_DIGEST_SECRET to the same secret
// out-of-band), and compares the result to what this side computes
// independently. A mismatch sends a VERBOSE explaining the denial and
// never calls the wrapped handler.
func SHA1Digest(secret string) layer.Layer {
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, conn *connection.Connection, req *handler.Request) error {
			nonce, err := createNonce()
			if err != nil {
				return err
			}

			h := sha1.New()
			h.Write([]byte(secret))
			h.Write([]byte(":"))
			h.Write([]byte(nonce))
			expected := h.Sum(nil)

			expr := fmt.Sprintf("${SHA1(${BLAZING_AGI_DIGEST_SECRET}:%s)}", nonce)
			reply, err := connection.SendCommand(ctx, conn, command.NewGetFullVariable(expr))
			if err != nil {
				return err
			}
			if reply.Value == nil {
				return &connection.AGIError{Kind: connection.InnerError, Err: errors.New("digest: GET FULL VARIABLE returned no data")}
			}

			got, err := hex.DecodeString(*reply.Value)
			if err != nil {
				return &connection.AGIError{Kind: connection.InnerError, Err: ErrDigestDecode}
			}
			if !hmacEqual(expected, got) {
				_, _ = connection.SendCommand(ctx, conn, command.NewVerbose("Unauthenticated: Wrong Digest."))
				return &connection.AGIError{Kind: connection.InnerError, Err: ErrDigestMismatch}
			}

			return next.Handle(ctx, conn, req)
		})
	}
}

func hmacEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

func createNonce() (string, error) {
	var buf [16]byte
	now := time.Now()
	binary.LittleEndian.PutUint64(buf[0:8], uint64(now.Unix()))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(now.Nanosecond()))
	if _, err := rand.Read(buf[12:16]); err != nil {
		return "", &connection.AGIError{Kind: connection.InnerError, Err: err}
	}
	return hex.EncodeToString(buf[:]), nil
}
