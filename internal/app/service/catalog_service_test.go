package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mrops-br/catalog-viewer/internal/domain"
	"github.com/mrops-br/catalog-viewer/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSource serves a fixed collection. Lookups for ids in block wait for ctx cancellation.
type fakeSource struct {
	mu       sync.Mutex
	products []domain.Product
	listErr  error
	block    map[string]bool
	started  chan string
	calls    int
}

func (f *fakeSource) FetchAll(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeSource) FetchByID(ctx context.Context, id string) (*domain.Product, error) {
	if f.started != nil {
		f.started <- id
	}
	if f.block[id] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	for _, p := range f.products {
		if p.Key() == id {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func catalog(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:       i + 1,
			Title:    fmt.Sprintf("Item %d", i+1),
			Category: []string{"electronics", "jewelery"}[i%2],
			Price:    float64(5 * (i + 1)),
			Rating:   domain.Rating{Rate: float64(i%6) * 1.0, Count: i},
		}
	}
	return products
}

func newTestService(t *testing.T, source domain.ProductSource) (*CatalogService, *memory.SessionRepository) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	repo := memory.NewSessionRepository(tracer, logger)
	return NewCatalogService(source, repo, tracer, metricnoop.NewMeterProvider().Meter("test"), logger), repo
}

func TestMount_FetchesOnce(t *testing.T) {
	source := &fakeSource{products: catalog(10)}
	svc, repo := newTestService(t, source)
	ctx := context.Background()

	session, err := svc.Mount(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 1, repo.Len())

	dash := svc.Dashboard(ctx, session)
	assert.Equal(t, 10, dash.Listing.Total)
	assert.Equal(t, []int{1, 2}, dash.Listing.Pages)
	assert.Len(t, dash.Listing.Products, 8)

	require.NoError(t, svc.GoToPage(ctx, session, 2))
	require.NoError(t, svc.ApplyCriteria(ctx, session, domain.Criteria{MaxPrice: 20}))
	_ = svc.Dashboard(ctx, session)

	assert.Equal(t, 1, source.calls, "the collection is never refetched for a mounted view")
}

func TestMount_FetchFailureLeavesEmptyCollection(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{listErr: errors.New("dial tcp: refused")})
	ctx := context.Background()

	session, err := svc.Mount(ctx)
	require.NoError(t, err)

	dash := svc.Dashboard(ctx, session)
	assert.Zero(t, dash.Listing.Total)
	assert.Empty(t, dash.Listing.Products)
	assert.Empty(t, dash.Listing.Pages)
	assert.Empty(t, dash.Notice)
}

func TestApplyCriteria_ResetsPage(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(30)})
	ctx := context.Background()
	session, err := svc.Mount(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.GoToPage(ctx, session, 3))
	require.NoError(t, svc.ApplyCriteria(ctx, session, domain.Criteria{Category: "electronics", MaxPrice: domain.DefaultMaxPrice}))

	dash := svc.Dashboard(ctx, session)
	assert.Equal(t, 1, dash.Listing.Page)
	assert.Equal(t, 15, dash.Listing.Matching)
	assert.Equal(t, []int{1, 2}, dash.Listing.Pages)
}

func TestApplyCriteria_Invalid(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(3)})
	ctx := context.Background()
	session, err := svc.Mount(ctx)
	require.NoError(t, err)

	err = svc.ApplyCriteria(ctx, session, domain.Criteria{MaxPrice: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidCriteria)
}

func TestGoToPage_OutOfRange(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(3)})
	ctx := context.Background()
	session, err := svc.Mount(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.GoToPage(ctx, session, 2), domain.ErrPageOutOfRange)
}

func TestAddToCart(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(3)})
	ctx := context.Background()
	session, err := svc.Mount(ctx)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, session, "2")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, session, "2")
	require.NoError(t, err)

	items := svc.Cart(session)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1].ID)

	dash := svc.Dashboard(ctx, session)
	assert.Equal(t, "Item 2 has been added to your cart!", dash.Notice)
	assert.Equal(t, 2, dash.Cart.Count)
	assert.Empty(t, svc.Dashboard(ctx, session).Notice, "notice is shown once")

	_, err = svc.AddToCart(ctx, session, "99")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(10)})
	ctx := context.Background()
	a, err := svc.Mount(ctx)
	require.NoError(t, err)
	b, err := svc.Mount(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.ApplyCriteria(ctx, a, domain.Criteria{MaxPrice: 10}))
	_, err = svc.AddToCart(ctx, a, "1")
	require.NoError(t, err)

	assert.Equal(t, 10, svc.Dashboard(ctx, b).Listing.Matching)
	assert.Empty(t, svc.Cart(b))
}

func TestUnmountAndSession(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(2)})
	ctx := context.Background()
	session, err := svc.Mount(ctx)
	require.NoError(t, err)

	found, err := svc.Session(ctx, session.ID)
	require.NoError(t, err)
	assert.Same(t, session, found)

	require.NoError(t, svc.Unmount(ctx, session.ID))
	require.NoError(t, svc.Unmount(ctx, session.ID))

	_, err = svc.Session(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestBrowse(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(10)})
	ctx := context.Background()

	listing, err := svc.Browse(ctx, domain.DefaultCriteria(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Page)
	require.Len(t, listing.Products, 2)
	assert.Equal(t, 9, listing.Products[0].ID)
	assert.Equal(t, []string{"electronics", "jewelery"}, listing.Categories)

	_, err = svc.Browse(ctx, domain.DefaultCriteria(), 3)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestBrowse_MissingCategory(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{products: catalog(10)})

	listing, err := svc.Browse(context.Background(), domain.Criteria{Category: "toys", MaxPrice: domain.DefaultMaxPrice}, 1)
	require.NoError(t, err)
	assert.Empty(t, listing.Products)
	assert.Empty(t, listing.Pages)
}

func TestExpireSessions(t *testing.T) {
	svc, repo := newTestService(t, &fakeSource{products: catalog(1)})
	ctx := context.Background()

	clock := time.Now()
	svc.now = func() time.Time { return clock }
	_, err := svc.Mount(ctx)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	n, err := svc.ExpireSessions(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Zero(t, repo.Len())
}

func TestRunSweeper_StopsWithContext(t *testing.T) {
	svc, _ := newTestService(t, &fakeSource{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, time.Minute, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	<-done
}
