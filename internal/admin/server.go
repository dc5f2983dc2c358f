// Package admin provides the operational HTTP server: health probes,
// Prometheus metrics, and rate-limited client/user registration endpoints
// backed by the storage adapter.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/tendant/oauth2-store/internal/metrics"
	"github.com/tendant/oauth2-store/internal/store"
)

// Pinger reports whether the backing document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the admin HTTP server.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	storage store.Storage
	pinger  Pinger
	logger  *slog.Logger

	registerRateLimit int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegisterRateLimit sets the per-IP request budget per minute for the
// registration endpoints.
func WithRegisterRateLimit(perMinute int) Option {
	return func(s *Server) {
		s.registerRateLimit = perMinute
	}
}

// NewServer creates the admin server with default middleware and routes.
func NewServer(addr string, storage store.Storage, pinger Pinger, opts ...Option) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:            r,
		storage:           storage,
		pinger:            pinger,
		logger:            slog.Default(),
		registerRateLimit: 10,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Default middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	// Request logging middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				s.logger.Info("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Health endpoints
	health := NewHealthHandler(pinger)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Metrics
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// Registration endpoints, rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(s.registerRateLimit, time.Minute))
		r.Post("/clients", s.handleCreateClient)
		r.Post("/users", s.handleCreateUser)
	})
	r.Get("/clients/{clientID}", s.handleGetClient)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router returns the chi router for adding routes.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting admin server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down admin server")
	return s.server.Shutdown(ctx)
}
