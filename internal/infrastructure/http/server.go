package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/config"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/middleware"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const meterName = "catalog-viewer"

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	handler    http.Handler
	httpServer *http.Server
	config     *config.ServerConfig
	catalog    *handler.CatalogHandler
	api        *handler.APIHandler
	logger     *slog.Logger
	telemetry  *telemetry.Telemetry
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	catalog *handler.CatalogHandler,
	api *handler.APIHandler,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		catalog:   catalog,
		api:       api,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	// otelhttp wraps the whole router: http.server.request.duration and friends plus server spans
	s.handler = otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithTracerProvider(telem.TracerProvider),
		otelhttp.WithMeterProvider(telem.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	meter := s.telemetry.MeterProvider.Meter(meterName)
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

func (s *Server) setupRoutes() {
	// Group middleware runs after routing, so handler logs carry the route pattern
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.HTTPRouteContext())

		// List view and detail view
		r.Get("/", s.catalog.Dashboard)
		r.Post("/filters", s.catalog.ApplyFilters)
		r.Post("/cart", s.catalog.AddToCart)
		r.Get("/cart/export.xlsx", s.catalog.ExportCart)
		r.Post("/reset", s.catalog.Reset)
		r.Get("/product/{id}", s.catalog.ProductDetail)

		r.Get("/api/products", s.api.ListProducts)
		r.Get("/api/products/{id}", s.api.GetProduct)
	})

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Handler returns the fully instrumented root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
