// Package server exposes the render pipeline over HTTP.
//
// # Routes
//
//	POST /v1/render                                  render a posted diagram set
//	GET  /v1/orders                                  list stored order IDs
//	GET  /v1/orders/{id}/summary                     property table of an order
//	GET  /v1/orders/{id}/diagrams/{index}.{format}   one rendered diagram
//	GET  /healthz                                    liveness and build info
//
// Order routes need a [store.Store]; without one they answer 501.
//
// Errors are JSON objects {"error": "...", "code": "..."} whose status comes
// from [errors.HTTPStatus].
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/trimworks/flashing/pkg/pipeline"
	"github.com/trimworks/flashing/pkg/store"
)

const (
	DefaultMaxBody        = 4 << 20
	DefaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Server serves rendered diagrams.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	opts    pipeline.Options
	maxBody int64
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the order routes.
func WithStore(s store.Store) Option { return func(srv *Server) { srv.store = s } }

// WithOptions sets the pipeline options every request starts from. Formats
// and indices are chosen per request.
func WithOptions(o pipeline.Options) Option { return func(srv *Server) { srv.opts = o } }

// WithMaxBody limits the size of posted diagram sets.
func WithMaxBody(n int64) Option { return func(srv *Server) { srv.maxBody = n } }

// WithRequestTimeout bounds the time spent on one request.
func WithRequestTimeout(d time.Duration) Option { return func(srv *Server) { srv.timeout = d } }

// New returns a server that renders through runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		maxBody: DefaultMaxBody,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(s.timeout))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found", Code: "NOT_FOUND"})
	})

	r.Get("/healthz", s.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.render)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.listOrders)
			r.Get("/{id}/summary", s.orderSummary)
			r.Get("/{id}/diagrams/{index:[0-9]+}.{format:[a-z]+}", s.orderDiagram)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
