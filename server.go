package blazingagi

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/curatorsigma/blazing-agi/agiparse"
	"github.com/curatorsigma/blazing-agi/config"
	"github.com/curatorsigma/blazing-agi/connection"
	"github.com/curatorsigma/blazing-agi/handler"
	"github.com/curatorsigma/blazing-agi/internal/telemetry"
	"github.com/curatorsigma/blazing-agi/router"
)

// serveConfig is Serve's resolved, defaulted configuration. Option
// values mutate it; nothing here is exported, matching Serve's own
// signature, which deliberately takes only a net.Listener and a
// *router.Router as required inputs.
type serveConfig struct {
	logger          zerolog.Logger
	workerPoolSize  int
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

func defaultServeConfig() serveConfig {
	d := config.Default()
	return serveConfig{
		logger:          telemetry.New(d),
		workerPoolSize:  d.MaxConnections,
		shutdownTimeout: time.Duration(d.ShutdownTimeout) * time.Second,
	}
}

// Option configures Serve beyond its two required arguments.
type Option func(*serveConfig)

// WithConfig resolves every Serve knob from cfg: logger sink/level,
// worker pool size, connection timeouts, and shutdown grace period.
func WithConfig(cfg config.Config) Option {
	return func(sc *serveConfig) {
		sc.logger = telemetry.New(cfg)
		if cfg.MaxConnections > 0 {
			sc.workerPoolSize = cfg.MaxConnections
		}
		if cfg.ReadTimeout > 0 {
			sc.readTimeout = time.Duration(cfg.ReadTimeout) * time.Second
		}
		if cfg.WriteTimeout > 0 {
			sc.writeTimeout = time.Duration(cfg.WriteTimeout) * time.Second
		}
		if cfg.ShutdownTimeout > 0 {
			sc.shutdownTimeout = time.Duration(cfg.ShutdownTimeout) * time.Second
		}
	}
}

// WithLogger overrides the logger Serve uses, independent of WithConfig.
func WithLogger(logger zerolog.Logger) Option {
	return func(sc *serveConfig) { sc.logger = logger }
}

// Serve accepts connections on listener until ctx is cancelled,
// dispatching each through r. One connection's failure — a parse
// error, an I/O error, a handler error — never affects another; every
// failure is logged and only that connection is closed.
//
// Serve blocks until ctx is cancelled and every in-flight connection
// has either finished or the configured shutdown grace period elapsed,
// whichever comes first. It returns the aggregate of the accept loop's
// own error (if any) and any error from the shutdown wait.
func Serve(ctx context.Context, listener net.Listener, r *router.Router, opts ...Option) error {
	sc := defaultServeConfig()
	for _, opt := range opts {
		opt(&sc)
	}
	logger := sc.logger

	pool, err := ants.NewPool(sc.workerPoolSize)
	if err != nil {
		return fmt.Errorf("blazingagi: failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var mu sync.Mutex
	active := make(map[net.Conn]struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return listener.Close()
	})
	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-gctx.Done():
					return nil
				default:
					logger.Error().Err(err).Msg("accept failed")
					continue
				}
			}

			mu.Lock()
			active[conn] = struct{}{}
			mu.Unlock()

			c := conn
			submitErr := pool.Submit(func() {
				defer func() {
					mu.Lock()
					delete(active, c)
					mu.Unlock()
					_ = c.Close()
				}()
				handleConnection(gctx, c, r, logger, sc)
			})
			if submitErr != nil {
				logger.Warn().Err(submitErr).Msg("failed to submit connection to the worker pool")
				mu.Lock()
				delete(active, c)
				mu.Unlock()
				_ = c.Close()
			}
		}
	})

	acceptErr := g.Wait()
	drainErr := drain(&mu, active, sc.shutdownTimeout)
	return multierr.Append(acceptErr, drainErr)
}

// drain waits for active to empty, polling at a short fixed interval,
// up to timeout. Any connections still open when the timeout elapses
// are force-closed and reported as the returned error.
func drain(mu *sync.Mutex, active map[net.Conn]struct{}, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		mu.Lock()
		remaining := len(active)
		mu.Unlock()
		if remaining == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			mu.Lock()
			defer mu.Unlock()
			for conn := range active {
				_ = conn.Close()
			}
			return fmt.Errorf("blazingagi: shutdown timed out with %d connection(s) still active", remaining)
		}
		<-ticker.C
	}
}

// handleConnection runs one accepted socket through the handshake
// sequencing state machine up to READY, looks up its route, and
// invokes the resulting handler. It never panics or propagates an
// error to the caller; everything worth knowing is logged.
func handleConnection(ctx context.Context, netConn net.Conn, r *router.Router, logger zerolog.Logger, sc serveConfig) {
	if tc, ok := netConn.(*net.TCPConn); ok {
		if sc.readTimeout > 0 {
			_ = tc.SetReadDeadline(time.Now().Add(sc.readTimeout))
		}
		if sc.writeTimeout > 0 {
			_ = tc.SetWriteDeadline(time.Now().Add(sc.writeTimeout))
		}
	}

	conn := connection.New(netConn)
	defer conn.Close()

	start, err := conn.ReadMessage(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("failed reading the handshake start")
		return
	}
	if _, ok := start.(agiparse.NetworkStart); !ok {
		logger.Debug().Msg("first message on the connection was not agi_network: yes")
		return
	}

	second, err := conn.ReadMessage(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("failed reading the variable dump")
		return
	}
	dump, ok := second.(agiparse.VariableDump)
	if !ok {
		logger.Debug().Msg("second message on the connection was not a variable dump")
		return
	}

	h, captures := r.LookupOrFallback(dump.RequestURI)
	req := &handler.Request{Variables: dump, Captures: captures}

	if err := h.Handle(ctx, conn, req); err != nil {
		logger.Warn().Err(err).Msg("handler returned an error")
	}
}
