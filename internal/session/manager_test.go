package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/repository/kv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	products []domain.Product
	err      error
	calls    int
}

func (s *stubSource) ListProducts(context.Context) ([]domain.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type stubOrders struct{}

func (stubOrders) CreateOrder(context.Context, domain.Order) (*domain.PlacedOrder, error) {
	return &domain.PlacedOrder{OrderID: "ord-1"}, nil
}

func product(id string, price int64) domain.Product {
	return domain.Product{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price)}
}

func TestGetIssuesNewSessionForUnknownID(t *testing.T) {
	m := NewManager(kv.NewMemory(), &stubSource{}, stubOrders{}, Options{})

	s, created := m.Get(context.Background(), "")
	require.True(t, created)
	_, err := uuid.Parse(s.ID)
	require.NoError(t, err)

	again, created := m.Get(context.Background(), s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	bogus, created := m.Get(context.Background(), "not-a-uuid")
	assert.True(t, created)
	assert.NotEqual(t, "not-a-uuid", bogus.ID)
	assert.Equal(t, 2, m.Len())
}

func TestNewSessionStartsWithWarmCatalog(t *testing.T) {
	src := &stubSource{products: []domain.Product{product("a", 100), product("b", 200)}}
	m := NewManager(kv.NewMemory(), src, stubOrders{}, Options{})
	require.NoError(t, m.Warm(context.Background()))

	s, _ := m.Get(context.Background(), "")
	assert.Len(t, s.Catalog.Products(), 2)
	assert.Len(t, s.Catalog.Filtered(), 2)
	assert.Equal(t, 1, src.calls)
}

func TestWarmFailureLeavesCatalogEmpty(t *testing.T) {
	m := NewManager(kv.NewMemory(), &stubSource{err: errors.New("down")}, stubOrders{}, Options{})
	require.Error(t, m.Warm(context.Background()))

	s, _ := m.Get(context.Background(), "")
	assert.Empty(t, s.Catalog.Products())
}

func TestSessionRefreshUpdatesSharedCatalog(t *testing.T) {
	src := &stubSource{}
	m := NewManager(kv.NewMemory(), src, stubOrders{}, Options{})
	first, _ := m.Get(context.Background(), "")

	src.products = []domain.Product{product("a", 100)}
	_, err := first.Catalog.Refresh(context.Background(), m.Source())
	require.NoError(t, err)

	second, _ := m.Get(context.Background(), "")
	assert.Len(t, second.Catalog.Products(), 1)
}

func TestExpiredSessionRestoresPersistedCart(t *testing.T) {
	store := kv.NewMemory()
	m := NewManager(store, &stubSource{}, stubOrders{}, Options{TTL: time.Minute})
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	s, _ := m.Get(context.Background(), "")
	s.Cart.AddItem(context.Background(), product("a", 150).CartItem())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 0, m.Len())

	back, created := m.Get(context.Background(), s.ID)
	require.True(t, created)
	assert.Equal(t, s.ID, back.ID)
	assert.NotSame(t, s, back)
	assert.Equal(t, 1, back.Cart.State().ItemCount)
}

func TestGetExtendsExpiry(t *testing.T) {
	m := NewManager(kv.NewMemory(), &stubSource{}, stubOrders{}, Options{TTL: time.Minute})
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	s, _ := m.Get(context.Background(), "")
	now = now.Add(45 * time.Second)
	_, created := m.Get(context.Background(), s.ID)
	require.False(t, created)

	now = now.Add(45 * time.Second)
	assert.Zero(t, m.Sweep())
	_, created = m.Get(context.Background(), s.ID)
	assert.False(t, created)
}

func TestCheckoutUsesSessionCart(t *testing.T) {
	m := NewManager(kv.NewMemory(), &stubSource{}, stubOrders{}, Options{})
	s, _ := m.Get(context.Background(), "")

	_, err := s.Checkout.Begin(domain.Customer{})
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	s.Cart.AddItem(context.Background(), product("a", 150).CartItem())
	_, err = s.Checkout.Begin(domain.Customer{})
	require.NoError(t, err)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	m := NewManager(kv.NewMemory(), &stubSource{}, stubOrders{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
