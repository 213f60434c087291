package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	outputDir     string
	refreshSecret string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithOutputDir serves the generated files from dir at /
func WithOutputDir(dir string) Option {
	return func(c *config) {
		c.outputDir = dir
	}
}

// WithRefreshSecret enables POST /hooks/refresh, authenticated with secret
func WithRefreshSecret(secret string) Option {
	return func(c *config) {
		c.refreshSecret = secret
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	generateUC interfaces.GenerateUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	if cfg.refreshSecret != "" && generateUC != nil {
		refreshHandler := NewRefreshHandler(cfg.refreshSecret, generateUC)
		router.Post("/hooks/refresh", refreshHandler.Handle)
	}

	if cfg.outputDir != "" {
		router.Handle("/*", http.FileServer(http.Dir(cfg.outputDir)))
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
