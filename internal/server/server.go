// Package server provides the HTTP API for pakar.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/pakar/internal/config"
	"github.com/hyperjump/pakar/internal/metrics"
	"github.com/hyperjump/pakar/internal/recommend"
)

// Server is the HTTP server for the pakar API.
type Server struct {
	engine      *recommend.Engine
	config      *config.ServerConfig
	catalogPath string
	metrics     *metrics.Metrics
	limiter     *RateLimiter
	logger      *zap.Logger
	server      *http.Server
}

// NewServer creates a server. catalogPath is what POST /api/v1/catalog/reload loads; an
// empty path disables that endpoint.
func NewServer(
	engine *recommend.Engine,
	cfg *config.ServerConfig,
	catalogPath string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		engine:      engine,
		config:      cfg,
		catalogPath: catalogPath,
		metrics:     m,
		limiter:     NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		logger:      logger,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limiter.Middleware(s.onRateLimited))
		r.Post("/recommend", s.handleRecommend)
		r.Get("/recommend", s.handleRecommendForm)
		r.Get("/brands", s.handleBrands)
		r.Get("/categories", s.handleCategories)
		r.Get("/status", s.handleStatus)
		r.Post("/catalog/reload", s.handleReload)
	})
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go s.limiter.StartCleanup(time.Minute)
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.limiter.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.metrics.RateLimited.Inc()
	s.logger.Debug("rate limited", zap.String("remote", r.RemoteAddr), zap.String("path", r.URL.Path))
	s.respondError(w, http.StatusTooManyRequests, "too many requests")
}

// requestLogger logs each request with zap and records HTTP metrics by route pattern.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)
		s.metrics.RecordHTTP(r.Method, route, status, took)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", took),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
