// Package server exposes the render service: it turns a {generateMode, colors}
// request into a zipped theme bundle.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/config"
	"github.com/alexisbeaulieu97/colorterm/internal/export"
	"github.com/alexisbeaulieu97/colorterm/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/colorterm/internal/ports"
	"github.com/alexisbeaulieu97/colorterm/internal/render"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
)

// maxRequestBody bounds a /generate payload.
const maxRequestBody = 64 << 10

// Renderer produces theme bundles. Defined here (consumer-side) so tests can
// substitute it.
type Renderer interface {
	Render(target schema.Target, colors map[string]string) (*render.Bundle, error)
}

// Config holds the listener settings. TrustedProxies lists the peers whose
// X-Forwarded-For header is believed; without any, clients are keyed by their
// TCP address.
type Config struct {
	Addr           string
	RateLimit      float64
	Burst          int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	TrustedProxies []netip.Prefix
}

// ConfigFrom maps the application configuration onto server settings.
func ConfigFrom(cfg config.ServerConfig) (Config, error) {
	trusted, err := ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Addr:           cfg.Addr,
		RateLimit:      cfg.RateLimit,
		Burst:          cfg.Burst,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		TrustedProxies: trusted,
	}, nil
}

// Server is the render service HTTP server.
type Server struct {
	httpServer *http.Server
	renderer   Renderer
	validate   *validator.Validate
	logger     ports.Logger
	metrics    *metrics
	mux        *http.ServeMux
}

// New creates a Server with middleware and routes.
func New(cfg Config, renderer Renderer, logger ports.Logger) *Server {
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.Burst < 1 {
		cfg.Burst = 10
	}

	s := &Server{
		renderer: renderer,
		validate: config.GetValidator(),
		logger:   logger.With("component", "server"),
		metrics:  newMetrics(),
		mux:      http.NewServeMux(),
	}
	s.registerRoutes()

	skip := []string{"/healthz", "/metrics"}
	handler := Chain(s.mux,
		RecoveryMiddleware(s.logger),
		RequestIDMiddleware,
		LoggingMiddleware(s.logger, s.metrics, skip),
		RateLimitMiddleware(cfg.RateLimit, cfg.Burst, cfg.TrustedProxies, skip),
	)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	s.mux.Handle("POST /generate", RequireJSON(http.HandlerFunc(s.handleGenerate)))
}

// Handler returns the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting render service", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down render service")
	return s.httpServer.Shutdown(ctx)
}

// Run serves until ctx is cancelled, then shuts down within grace.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req export.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		BadRequest(w, "malformed JSON body: "+err.Error(), r.URL.Path)
		return
	}

	if err := s.validate.Struct(req); err != nil {
		InvalidTheme(w, config.ConvertValidationError(err).Error(), r.URL.Path)
		return
	}

	bundle, err := s.renderer.Render(req.GenerateMode, req.Colors)
	if err != nil {
		if errors.Is(err, schema.ErrUnsupportedSchema) ||
			errors.Is(err, schema.ErrRoleNotFound) ||
			errors.Is(err, color.ErrInvalidColor) {
			InvalidTheme(w, err.Error(), r.URL.Path)
			return
		}
		s.logger.Error(ctx, "rendering theme failed", "target", string(req.GenerateMode), "error", err)
		InternalError(w, "failed to render theme", r.URL.Path)
		return
	}

	data, err := bundle.Zip()
	if err != nil {
		s.logger.Error(ctx, "zipping theme bundle failed", "target", string(req.GenerateMode), "error", err)
		InternalError(w, "failed to package theme", r.URL.Path)
		return
	}

	s.metrics.bundlesTotal.WithLabelValues(string(bundle.Target)).Inc()
	s.logger.Debug(ctx, "theme bundle rendered", "target", string(bundle.Target), "bytes", len(data))

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", bundle.ArchiveName()))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
