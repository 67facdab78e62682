package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/catalog-viewer/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OpenDetail fetches one product into the session's detail tracker. A newer call for
// the same session cancels this one, which then reports its own id as still pending.
// On failure the returned error carries the cause; the state only ever holds the static message.
func (s *CatalogService) OpenDetail(ctx context.Context, session *domain.Session, id string) (domain.DetailState, error) {
	return s.fetchDetail(ctx, &session.Detail, id)
}

// GetProduct fetches one product outside any session
func (s *CatalogService) GetProduct(ctx context.Context, id string) (domain.DetailState, error) {
	var tracker domain.DetailTracker
	return s.fetchDetail(ctx, &tracker, id)
}

func (s *CatalogService) fetchDetail(ctx context.Context, tracker *domain.DetailTracker, id string) (domain.DetailState, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.FetchDetail")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id))

	fetchCtx, ticket := tracker.Begin(ctx, id)
	product, err := s.source.FetchByID(fetchCtx, id)

	state, current := tracker.Complete(ticket, product, err)
	if !current {
		span.SetAttributes(attribute.Bool("detail.superseded", true))
		span.SetStatus(codes.Ok, "Superseded by a newer request")
		s.logger.DebugContext(ctx, "Detail fetch superseded", slog.String("product_id", id))
		s.record(ctx, "detail", "superseded")
		return state, nil
	}

	if err == nil && product == nil {
		err = domain.ErrProductNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch product")
		s.logger.WarnContext(ctx, "Failed to fetch product details",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
		s.record(ctx, "detail", "failure")
		return state, err
	}

	s.logger.InfoContext(ctx, "Product retrieved successfully", slog.String("product_id", id))
	s.record(ctx, "detail", "success")

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return state, nil
}
