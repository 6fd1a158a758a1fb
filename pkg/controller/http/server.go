package http

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr      string
	dir       string
	useSentry bool
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithDir sets the extracted dump directory to serve
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithSentry wraps the router with the Sentry HTTP handler. The caller is
// responsible for initializing the Sentry client first.
func WithSentry() Option {
	return func(c *config) {
		c.useSentry = true
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates the dashboard HTTP server over an extracted dump directory
func NewServer(
	ctx context.Context,
	statsUC interfaces.StatsUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8090",
		dir:  ".",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	// Dump statistics
	statsHandler := NewStatsHandler(statsUC)
	router.Get("/api/stats", statsHandler.Handle)

	// Extracted dump files
	router.Handle("/*", http.FileServer(http.Dir(cfg.dir)))

	var handler http.Handler = router
	if cfg.useSentry {
		handler = sentryhttp.New(sentryhttp.Options{
			Repanic: true,
		}).Handle(router)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           handler,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
