package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/catalog-viewer/internal/app/dto"
	"github.com/mrops-br/catalog-viewer/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CatalogService handles the list view and detail view use cases
type CatalogService struct {
	source        domain.ProductSource
	sessions      domain.SessionRepository
	tracer        trace.Tracer
	logger        *slog.Logger
	operations    metric.Int64Counter
	cartAdditions metric.Int64Counter
	now           func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	source domain.ProductSource,
	sessions domain.SessionRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CatalogService {
	operations, _ := meter.Int64Counter(
		"catalog.operations",
		metric.WithDescription("Total number of catalog operations"),
	)

	cartAdditions, _ := meter.Int64Counter(
		"catalog.cart.additions",
		metric.WithDescription("Total number of products added to carts"),
	)

	return &CatalogService{
		source:        source,
		sessions:      sessions,
		tracer:        tracer,
		logger:        logger,
		operations:    operations,
		cartAdditions: cartAdditions,
		now:           time.Now,
	}
}

func (s *CatalogService) record(ctx context.Context, operation, result string) {
	s.operations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// loadCollection fetches the full collection. A failure is logged and yields an
// empty collection; the list view shows no error for it.
func (s *CatalogService) loadCollection(ctx context.Context, span trace.Span) []domain.Product {
	products, err := s.source.FetchAll(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "Failed to fetch products",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "fetch_collection", "failure")
		return []domain.Product{}
	}
	s.record(ctx, "fetch_collection", "success")
	return products
}

// Mount creates a new view session holding a freshly fetched collection
func (s *CatalogService) Mount(ctx context.Context) (*domain.Session, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Mount")
	defer span.End()

	products := s.loadCollection(ctx, span)

	session := domain.NewSession(uuid.New().String(), products, s.now())
	span.SetAttributes(
		attribute.String("session.id", session.ID),
		attribute.Int("product.count", len(products)),
	)

	if err := s.sessions.Create(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store session")
		s.record(ctx, "mount", "failure")
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.InfoContext(ctx, "List view mounted",
		slog.String("session_id", session.ID),
		slog.Int("products", len(products)),
	)
	s.record(ctx, "mount", "success")

	span.SetStatus(codes.Ok, "Mounted")
	return session, nil
}

// Session looks up a live view session and marks it active
func (s *CatalogService) Session(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Touch(s.now())
	return session, nil
}

// Unmount drops a view session, discarding its collection, criteria and cart
func (s *CatalogService) Unmount(ctx context.Context, id string) error {
	err := s.sessions.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Dashboard snapshots what the list view renders. The flash notice is consumed.
func (s *CatalogService) Dashboard(ctx context.Context, session *domain.Session) *dto.DashboardResponse {
	session.Lock()
	defer session.Unlock()

	return &dto.DashboardResponse{
		Listing: dto.ToListingResponse(session.View),
		Cart:    dto.ToCartResponse(&session.Cart),
		Notice:  session.TakeNotice(),
	}
}

// ApplyCriteria updates the session's filter criteria field by field, re-deriving
// the visible set for each criterion that changed
func (s *CatalogService) ApplyCriteria(ctx context.Context, session *domain.Session, criteria domain.Criteria) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ApplyCriteria")
	defer span.End()

	span.SetAttributes(
		attribute.String("criteria.category", criteria.Category),
		attribute.Float64("criteria.max_price", criteria.MaxPrice),
		attribute.Bool("criteria.four_stars", criteria.FourStars),
		attribute.Bool("criteria.five_stars", criteria.FiveStars),
		attribute.String("criteria.search", criteria.Search),
	)

	session.Lock()
	changed, err := session.View.Update(criteria)
	matching := len(session.View.Visible())
	session.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid criteria")
		s.record(ctx, "filter", "invalid")
		return err
	}

	span.SetAttributes(attribute.Bool("criteria.changed", changed), attribute.Int("product.matching", matching))
	s.logger.DebugContext(ctx, "Criteria applied",
		slog.String("session_id", session.ID),
		slog.Bool("changed", changed),
		slog.Int("matching", matching),
	)
	s.record(ctx, "filter", "success")

	span.SetStatus(codes.Ok, "Criteria applied")
	return nil
}

// GoToPage moves the session's pagination window
func (s *CatalogService) GoToPage(ctx context.Context, session *domain.Session, page int) error {
	session.Lock()
	err := session.View.GoToPage(page)
	session.Unlock()

	if err != nil {
		s.logger.WarnContext(ctx, "Page out of range",
			slog.String("session_id", session.ID),
			slog.Int("page", page),
		)
		s.record(ctx, "paginate", "invalid")
		return err
	}
	s.record(ctx, "paginate", "success")
	return nil
}

// AddToCart appends a product of the mounted collection to the session cart
func (s *CatalogService) AddToCart(ctx context.Context, session *domain.Session, productID string) (domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddToCart")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", productID))

	session.Lock()
	defer session.Unlock()

	product, ok := session.View.Lookup(productID)
	if !ok {
		span.SetStatus(codes.Error, "Product not found")
		s.record(ctx, "add_to_cart", "not_found")
		return domain.Product{}, fmt.Errorf("product %q: %w", productID, domain.ErrProductNotFound)
	}

	session.Cart.Add(product)
	session.Notice = fmt.Sprintf("%s has been added to your cart!", product.Title)

	s.cartAdditions.Add(ctx, 1)
	s.record(ctx, "add_to_cart", "success")
	s.logger.InfoContext(ctx, "Product added to cart",
		slog.String("session_id", session.ID),
		slog.String("product_id", productID),
		slog.Int("cart_size", session.Cart.Len()),
	)

	span.SetStatus(codes.Ok, "Added to cart")
	return product, nil
}

// Cart returns the session cart contents
func (s *CatalogService) Cart(session *domain.Session) []domain.Product {
	session.Lock()
	defer session.Unlock()
	return session.Cart.Items()
}

// Browse runs the filter/paginate engine over a freshly fetched collection without a session
func (s *CatalogService) Browse(ctx context.Context, criteria domain.Criteria, page int) (*dto.ListingResponse, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Browse")
	defer span.End()

	view := domain.NewListView(s.loadCollection(ctx, span))
	if _, err := view.Apply(criteria); err != nil {
		span.SetStatus(codes.Error, "Invalid criteria")
		s.record(ctx, "browse", "invalid")
		return nil, err
	}
	if err := view.GoToPage(page); err != nil {
		span.SetStatus(codes.Error, "Page out of range")
		s.record(ctx, "browse", "invalid")
		return nil, err
	}

	s.record(ctx, "browse", "success")
	span.SetStatus(codes.Ok, "Browsed")
	return dto.ToListingResponse(view), nil
}
