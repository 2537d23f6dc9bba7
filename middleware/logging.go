// Package middleware collects reusable layer.Layer implementations:
// request logging and the SHA1-digest authentication example.
package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/curatorsigma/blazing-agi/connection"
	"github.com/curatorsigma/blazing-agi/handler"
	"github.com/curatorsigma/blazing-agi/layer"
)

// Logging returns a layer.Layer that logs entry, exit, and duration for
// every request it wraps, using logger at debug level for the happy
// path and warn for a handler error.
func Logging(logger zerolog.Logger) layer.Layer {
	return func(next handler.Handler) handler.Handler {
		return handler.HandlerFunc(func(ctx context.Context, conn *connection.Connection, req *handler.Request) error {
			uniqueID, _ := req.Variables.Variables.Get("agi_uniqueid")
			requestURI := ""
			if req.Variables.RequestURI != nil {
				requestURI = req.Variables.RequestURI.String()
			}

			start := time.Now()
			logger.Debug().
				Str("uniqueid", uniqueID).
				Str("requestURI", requestURI).
				Msg("handling request")

			err := next.Handle(ctx, conn, req)

			elapsed := time.Since(start)
			if err != nil {
				logger.Warn().
					Str("uniqueid", uniqueID).
					Dur("elapsed", elapsed).
					Err(err).
					Msg("handler returned an error")
			} else {
				logger.Debug().
					Str("uniqueid", uniqueID).
					Dur("elapsed", elapsed).
					Msg("handler succeeded")
			}
			return err
		})
	}
}
