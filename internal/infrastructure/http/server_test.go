package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrops-br/catalog-viewer/internal/app/service"
	"github.com/mrops-br/catalog-viewer/internal/domain"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/config"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/http/views"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/repository/memory"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []domain.Product

func (s staticSource) FetchAll(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), s...), nil
}

func (s staticSource) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range s {
		if p.Key() == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	telem := telemetry.NewNoOpTelemetry(&config.OTLPConfig{ServiceName: "test"}, slog.LevelError, &bytes.Buffer{}, false)
	logger := telem.Logger
	tracer := telem.TracerProvider.Tracer("test")
	meter := telem.MeterProvider.Meter("test")

	source := staticSource{
		{ID: 1, Title: "Backpack", Category: "bags", Price: 109.95, Rating: domain.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "Ring", Category: "jewelery", Price: 9.99, Rating: domain.Rating{Rate: 5, Count: 10}},
	}
	svc := service.NewCatalogService(source, memory.NewSessionRepository(tracer, logger), tracer, meter, logger)
	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	return NewServer(
		&config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		handler.NewCatalogHandler(svc, renderer, logger, false),
		handler.NewAPIHandler(svc, logger),
		logger,
		telem,
	)
}

func TestServer_Routes(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	cases := []struct {
		path   string
		status int
		body   string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "Backpack"},
		{"/product/2", http.StatusOK, "Ring"},
		{"/api/products?category=jewelery", http.StatusOK, `"title":"Ring"`},
		{"/api/products/9", http.StatusNotFound, `"status":"failure"`},
		{"/metrics", http.StatusOK, ""},
		{"/nowhere", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), tc.body)
		})
	}
}
