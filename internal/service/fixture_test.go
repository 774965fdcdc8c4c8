package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/events"
	"github.com/Arthur-DiasP/Delivery/internal/pricing"
	"github.com/Arthur-DiasP/Delivery/internal/repository"
	"github.com/Arthur-DiasP/Delivery/internal/session"
)

var (
	testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	testID  = session.Identity{ClientID: "client-1", SessionID: "session-1"}
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeCatalog struct {
	products map[string]domain.Product
	offers   map[string]domain.Offer
}

func (c *fakeCatalog) Product(id string) (domain.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

func (c *fakeCatalog) Offer(id string) (domain.Offer, bool) {
	o, ok := c.offers[id]
	return o, ok
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: map[string]domain.Product{
			"pizza-a": {
				ID: "pizza-a", Name: "Pizza A", Price: dec("30"), Category: domain.CategoryPizza,
				Customization: &domain.CustomizationSpec{
					Removable: []string{"cebola", "tomate"},
					Additional: []domain.Option{
						{ID: "borda", Name: "Borda recheada", Price: dec("9")},
						{ID: "catupiry", Name: "Catupiry", Price: dec("5")},
						{ID: "oregano", Name: "Orégano extra", Price: decimal.Zero},
					},
				},
			},
			"guarana": {ID: "guarana", Name: "Guaraná", Price: dec("12"), Category: domain.CategoryDrink},
		},
		offers: map[string]domain.Offer{
			"combo": {ID: "combo", Name: "Combo", ProductIDs: []string{"pizza-a", "pizza-a", "guarana"},
				Price: dec("25"), Active: true, ExpiresAt: testNow.Add(2 * time.Hour)},
			"expired": {ID: "expired", Name: "Old", ProductIDs: []string{"pizza-a"},
				Price: dec("10"), Active: true, ExpiresAt: testNow.Add(-time.Minute)},
			"ghost": {ID: "ghost", Name: "Ghost", ProductIDs: []string{"missing"},
				Price: dec("10"), Active: true, ExpiresAt: testNow.Add(time.Hour)},
		},
	}
}

type fakeCoupons struct {
	mu      sync.Mutex
	coupons map[string]domain.Coupon
	err     error
	calls   int
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeCoupons) FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	f.mu.Lock()
	f.calls++
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if block != nil {
		entered <- struct{}{}
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.coupons[code]
	if !ok {
		return nil, repository.ErrCouponNotFound
	}
	return &c, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
	err    error
}

func (f *fakeOrders) CreateOrder(_ context.Context, o *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[o.OrderID] = o
	return nil
}

func (f *fakeOrders) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

type fakePublisher struct {
	published []events.OrderCreatedEvent
	err       error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, ev events.OrderCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, ev)
	return nil
}

type fixture struct {
	store    *session.MemoryStore
	catalog  *fakeCatalog
	coupons  *fakeCoupons
	orders   *fakeOrders
	events   *fakePublisher
	cart     *CartService
	coupon   *CouponService
	checkout *CheckoutService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:   session.NewMemoryStore(),
		catalog: newFakeCatalog(),
		coupons: &fakeCoupons{coupons: map[string]domain.Coupon{
			"PIZZA10": {Code: "PIZZA10", DiscountPercent: 10, Active: true, ExpiresOn: "2026-10-14"},
			"OLD":     {Code: "OLD", DiscountPercent: 20, Active: true, ExpiresOn: "2026-10-13"},
			"OFF":     {Code: "OFF", DiscountPercent: 15, Active: false, ExpiresOn: "2027-01-01"},
		}},
		orders: &fakeOrders{orders: make(map[string]*domain.Order)},
		events: &fakePublisher{},
	}

	logger := zap.NewNop()
	ledger := NewLedger(f.store, pricing.Fees{Service: dec("1"), Delivery: decimal.Zero})

	f.cart = NewCartService(ledger, f.catalog, logger)
	f.cart.now = func() time.Time { return testNow }
	f.coupon = NewCouponService(ledger, f.coupons, time.UTC, time.Second, logger)
	f.coupon.now = func() time.Time { return testNow }
	f.checkout = NewCheckoutService(ledger, f.orders, f.events, time.Second, logger)
	f.checkout.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) add(t *testing.T, productID string, qty int) *CartView {
	t.Helper()
	view, err := f.cart.AddItem(context.Background(), testID, AddItemCommand{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return view
}

func (f *fixture) hasSlot(t *testing.T, slot session.Slot) bool {
	t.Helper()
	var raw any
	ok, err := f.store.Load(context.Background(), testID, slot, &raw)
	require.NoError(t, err)
	return ok
}

var errBoom = errors.New("boom")
