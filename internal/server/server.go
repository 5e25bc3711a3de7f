package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/msto63/argot/foundation/argot"
	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/history"
)

// Config holds server configuration
type Config struct {
	Addr    string
	Version string

	// ShutdownTimeout bounds graceful shutdown in Run (default: 10s)
	ShutdownTimeout time.Duration
}

// Server exposes the gateway at /ws, metrics at /metrics and a health
// report at /healthz
type Server struct {
	httpServer *http.Server
	gateway    *Gateway
	metrics    *Metrics
	health     *Health
	logger     *argotlog.Logger
	config     Config
}

// New creates a server. The gateway options are shared with NewGateway.
func New(cfg Config, opts GatewayOptions) *Server {
	if opts.Logger == nil {
		opts.Logger = argotlog.GetDefault()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	logger := opts.Logger.WithField("component", "argot-server")

	gateway := NewGateway(opts)
	health := NewHealth(cfg.Version)
	health.Register("commands", commandsCheck(opts.Engine))
	health.Register("history", historyCheck(opts.History))

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway)
	mux.Handle("/metrics", opts.Metrics.Handler())
	mux.Handle("/healthz", health)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           loggingMiddleware(logger, mux),
			ReadHeaderTimeout: 10 * time.Second,
		},
		gateway: gateway,
		metrics: opts.Metrics,
		health:  health,
		logger:  logger,
		config:  cfg,
	}
}

func commandsCheck(engine *argot.Engine) CheckFunc {
	return func(context.Context) CheckResult {
		n := engine.Registry().Len()
		if n == 0 {
			return CheckResult{Status: StatusDegraded, Message: "no commands registered"}
		}
		return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("%d commands registered", n)}
	}
}

func historyCheck(store history.Store) CheckFunc {
	return func(ctx context.Context) CheckResult {
		if store == nil {
			return CheckResult{Status: StatusHealthy, Message: "disabled"}
		}
		n, err := store.Count(ctx)
		if err != nil {
			return CheckResult{Status: StatusUnhealthy, Message: err.Error()}
		}
		return CheckResult{Status: StatusHealthy, Message: fmt.Sprintf("%d entries", n)}
	}
}

// Handler returns the server's routes, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Gateway returns the websocket gateway
func (s *Server) Gateway() *Gateway {
	return s.gateway
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("Starting argot gateway", argotlog.Fields{"addr": listener.Addr().String()})

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping argot gateway")

	// hijacked websocket connections are not closed by Shutdown
	s.gateway.Close()
	return s.httpServer.Shutdown(ctx)
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *argotlog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request", argotlog.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapper.statusCode,
			"duration": time.Since(start),
		})
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}
