// Package fakestore talks to a Fake Store compatible product API.
package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrops-br/catalog-viewer/internal/domain"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// Client is a domain.ProductSource backed by the upstream HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	logger     *slog.Logger
	duration   metric.Float64Histogram
	group      singleflight.Group
}

// NewClient creates a product API client. Outgoing requests are traced through otelhttp.
func NewClient(cfg *config.UpstreamConfig, tracer trace.Tracer, meter metric.Meter, logger *slog.Logger) *Client {
	duration, _ := meter.Float64Histogram(
		"catalog.upstream.duration.ms",
		metric.WithDescription("Product API request duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer:   tracer,
		logger:   logger,
		duration: duration,
	}
}

// FetchAll retrieves the whole collection. Concurrent callers share one upstream request
// and each receives its own copy of the result.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "fakestore.FetchAll")
	defer span.End()

	v, err, shared := c.group.Do("products", func() (any, error) {
		var products []domain.Product
		if err := c.get(context.WithoutCancel(ctx), "/products", "list", &products); err != nil {
			return nil, err
		}
		return products, nil
	})
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch products")
		return nil, err
	}

	result := v.([]domain.Product)
	products := make([]domain.Product, len(result))
	copy(products, result)

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products fetched")
	return products, nil
}

// FetchByID retrieves one product. The identifier is forwarded verbatim (path-escaped).
func (c *Client) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := c.tracer.Start(ctx, "fakestore.FetchByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	var product *domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), "get", &product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch product")
		return nil, err
	}
	if product == nil {
		span.SetStatus(codes.Error, "Product not found")
		return nil, fmt.Errorf("product %q: %w", id, domain.ErrProductNotFound)
	}

	span.SetStatus(codes.Ok, "Product fetched")
	return product, nil
}

// get performs a GET and decodes the JSON body into out. An empty body decodes as null.
func (c *Client) get(ctx context.Context, path, operation string, out any) error {
	start := time.Now()
	status := 0
	defer func() {
		c.duration.Record(ctx, float64(time.Since(start).Milliseconds()),
			metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.Int("http.response.status_code", status),
			),
		)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.DebugContext(ctx, "Calling product API", slog.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrProductNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, bytes.TrimSpace(body))
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("null")
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	return nil
}
