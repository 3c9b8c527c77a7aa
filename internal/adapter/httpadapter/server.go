package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/delivery-quote-service/internal/domain"
	"github.com/couchcryptid/delivery-quote-service/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the quote API alongside health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// AlwaysReady is a readiness checker for deployments without a pipeline,
// where the API can serve as soon as it is listening.
type AlwaysReady struct{}

func (AlwaysReady) CheckReadiness(context.Context) error { return nil }

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api/v1 quote routes. A nil geocoder disables address completion on
// POST /api/v1/quotes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	api := &quoteAPI{geocoder: geocoder, metrics: metrics, logger: logger}
	mux.HandleFunc("GET /api/v1/zones", api.handleZones)
	mux.HandleFunc("GET /api/v1/delivery-fee", api.handleDeliveryFee)
	mux.HandleFunc("GET /api/v1/delivery-estimate", api.handleDeliveryEstimate)
	mux.HandleFunc("POST /api/v1/quotes", api.handleQuote)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
