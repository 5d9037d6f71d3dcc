// Package api serves conversions over HTTP.
package api

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/newtron-network/mistconv/pkg/store"
	"github.com/newtron-network/mistconv/pkg/util"
)

// DefaultAddr is the listen address when neither the settings nor PORT
// provide one.
const DefaultAddr = ":3000"

// MaxRequestBytes bounds the size of a conversion request.
const MaxRequestBytes = 32 << 20

// Config configures the API server.
type Config struct {
	Addr         string
	Disclaimer   Disclaimer
	TemplateName string
	Logger       *logrus.Logger
	Store        *store.Client // nil disables export
}

// Server is the HTTP API server.
type Server struct {
	httpServer   *http.Server
	disclaimer   Disclaimer
	templateName string
	log          *logrus.Logger
	store        *store.Client
	metrics      *metrics
	startTime    time.Time
}

// NewServer creates a new API server.
func NewServer(cfg Config) *Server {
	s := &Server{
		disclaimer:   cfg.Disclaimer,
		templateName: cfg.TemplateName,
		log:          cfg.Logger,
		store:        cfg.Store,
		startTime:    time.Now(),
	}
	if s.log == nil {
		s.log = util.Logger
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Prometheus metrics with isolated registry
	registry := prometheus.NewRegistry()
	s.metrics = newMetrics(registry)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/disclaimer", s.disclaimerHandler)
	mux.HandleFunc("POST /api/convert", s.convertHandler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("HTTP API server listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// ListenAddr resolves the listen address: PORT wins over addr, and
// DefaultAddr is used when both are empty.
func ListenAddr(addr string) string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	if addr == "" {
		return DefaultAddr
	}
	return addr
}

// DisclaimerFromEnv overrides d with APP_DISCLAIMER, APP_GITHUB_URL and
// APP_DOCKER_URL when they are set.
func DisclaimerFromEnv(d Disclaimer) Disclaimer {
	if v := os.Getenv("APP_DISCLAIMER"); v != "" {
		d.Disclaimer = v
	}
	if v := os.Getenv("APP_GITHUB_URL"); v != "" {
		d.GithubURL = v
	}
	if v := os.Getenv("APP_DOCKER_URL"); v != "" {
		d.DockerURL = v
	}
	return d
}
