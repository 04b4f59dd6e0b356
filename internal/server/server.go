// Package server provides the HTTP API for vekta.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hyperjump/vekta/internal/cluster"
	"github.com/hyperjump/vekta/internal/config"
	"github.com/hyperjump/vekta/internal/embedding"
)

// Server is the HTTP server for the vectorize and cluster API.
type Server struct {
	embedder embedding.Embedder
	engine   *cluster.Engine
	config   *config.ServerConfig
	logger   *zap.Logger
	limiter  *rate.Limiter
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	embedder embedding.Embedder,
	engine *cluster.Engine,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		embedder: embedder,
		engine:   engine,
		config:   cfg,
		logger:   logger,
	}
	if cfg.RateLimit.Enabled() {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), max(cfg.RateLimit.Burst, 1))
	}
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.limitBody)
		r.Post("/vectorize", s.handleVectorize)
		r.Post("/cluster", s.handleCluster)
		r.Post("/analyze", s.handleAnalyze)
	})
	return r
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server and blocks until it stops. After Stop it
// returns http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
