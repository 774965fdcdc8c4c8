package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/events"
	"github.com/Arthur-DiasP/Delivery/internal/session"
)

var postalCodePattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// Handoff is what the payment step receives.
type Handoff struct {
	Lines   []domain.CartLine     `json:"lines"`
	Totals  domain.OrderTotals    `json:"totals"`
	Offer   *domain.ActiveOffer   `json:"offer,omitempty"`
	Coupon  *domain.AppliedCoupon `json:"coupon,omitempty"`
	Address domain.Address        `json:"address"`
}

type CheckoutService struct {
	ledger   *Ledger
	orders   OrderStore
	producer EventPublisher
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(ledger *Ledger, orders OrderStore, producer EventPublisher, timeout time.Duration, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		ledger:   ledger,
		orders:   orders,
		producer: producer,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// BeginCheckout freezes the grand total and delivery address in the
// session so the order can be placed against them.
func (s *CheckoutService) BeginCheckout(ctx context.Context, id session.Identity, addr domain.Address) (*Handoff, error) {
	addr, err := normalizeAddress(addr)
	if err != nil {
		return nil, err
	}

	unlock := s.ledger.lock(id)
	defer unlock()

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(st.Cart) == 0 {
		return nil, ErrCartEmpty
	}
	st, totals, err := s.ledger.reconcile(ctx, id, st)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.store.Save(ctx, id, session.OrderTotalSlot, totals.GrandTotal); err != nil {
		return nil, fmt.Errorf("failed to save order total: %w", err)
	}
	if err := s.ledger.store.Save(ctx, id, session.OrderAddressSlot, addr); err != nil {
		return nil, fmt.Errorf("failed to save order address: %w", err)
	}

	s.logger.Info("Checkout started",
		zap.String("session_id", id.SessionID),
		zap.String("grand_total", totals.GrandTotal.StringFixed(2)))

	return &Handoff{
		Lines:   st.Cart.Lines(),
		Totals:  totals,
		Offer:   st.Offer,
		Coupon:  st.Coupon,
		Address: addr,
	}, nil
}

func normalizeAddress(a domain.Address) (domain.Address, error) {
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Street = strings.TrimSpace(a.Street)
	a.Number = strings.TrimSpace(a.Number)
	a.District = strings.TrimSpace(a.District)
	a.Complement = strings.TrimSpace(a.Complement)

	if !postalCodePattern.MatchString(a.PostalCode) {
		return a, fmt.Errorf("%w: postal code", ErrInvalidAddress)
	}
	if len(a.PostalCode) == 8 {
		a.PostalCode = a.PostalCode[:5] + "-" + a.PostalCode[5:]
	}
	if a.Street == "" || a.Number == "" || a.District == "" {
		return a, ErrInvalidAddress
	}
	return a, nil
}

func normalizeCustomer(c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.CPF = strings.NewReplacer(".", "", "-", "", " ", "").Replace(c.CPF)

	if c.Name == "" {
		return c, fmt.Errorf("%w: name", ErrInvalidCustomer)
	}
	if !strings.Contains(c.Email, "@") {
		return c, fmt.Errorf("%w: email", ErrInvalidCustomer)
	}
	if len(c.CPF) != 11 || strings.Trim(c.CPF, "0123456789") != "" {
		return c, fmt.Errorf("%w: cpf must have 11 digits", ErrInvalidCustomer)
	}
	return c, nil
}

// PlaceOrder turns the handed-off checkout into a persisted order. The
// cart is priced again and must still match the handed-off total.
func (s *CheckoutService) PlaceOrder(ctx context.Context, id session.Identity, req domain.PlaceOrderRequest, requestID string) (*domain.Order, error) {
	customer, err := normalizeCustomer(req.Customer)
	if err != nil {
		return nil, err
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, req.PaymentMethod)
	}

	unlock := s.ledger.lock(id)
	defer unlock()

	var handedOff decimal.Decimal
	hasTotal, err := s.ledger.store.Load(ctx, id, session.OrderTotalSlot, &handedOff)
	if err != nil {
		return nil, fmt.Errorf("failed to load order total: %w", err)
	}
	var addr domain.Address
	hasAddr, err := s.ledger.store.Load(ctx, id, session.OrderAddressSlot, &addr)
	if err != nil {
		return nil, fmt.Errorf("failed to load order address: %w", err)
	}
	if !hasTotal || !hasAddr {
		return nil, ErrCheckoutSessionMissing
	}

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(st.Cart) == 0 {
		return nil, ErrCartEmpty
	}
	st, totals, err := s.ledger.reconcile(ctx, id, st)
	if err != nil {
		return nil, err
	}
	if !totals.GrandTotal.Equal(handedOff) {
		return nil, fmt.Errorf("%w: total was %s, now %s", ErrCheckoutStale,
			handedOff.StringFixed(2), totals.GrandTotal.StringFixed(2))
	}

	now := s.now()
	order := &domain.Order{
		OrderID:       uuid.New().String(),
		ClientID:      id.ClientID,
		Customer:      customer,
		Items:         st.Cart.Lines(),
		Address:       addr,
		Totals:        totals,
		PaymentMethod: req.PaymentMethod,
		PaymentID:     strings.TrimSpace(req.PaymentID),
		Status:        req.PaymentMethod.InitialStatus(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if st.Offer != nil {
		order.OfferID = st.Offer.ID
	}
	if st.Coupon != nil {
		order.CouponCode = st.Coupon.Code
	}
	if req.PaymentMethod == domain.PaymentCash {
		if req.CashTendered == nil || req.CashTendered.LessThan(totals.GrandTotal) {
			return nil, ErrInsufficientCash
		}
		order.CashTendered = req.CashTendered.Round(2)
		order.Change = order.CashTendered.Sub(totals.GrandTotal)
	}

	sctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.orders.CreateOrder(sctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
		if sctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
		}
		return nil, err
	}

	event := events.OrderCreatedEvent{
		EventID:       uuid.New().String(),
		OrderID:       order.OrderID,
		ClientID:      order.ClientID,
		GrandTotal:    order.Totals.GrandTotal,
		Items:         order.Items,
		OfferID:       order.OfferID,
		CouponCode:    order.CouponCode,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
		Timestamp:     now,
		RequestID:     requestID,
	}
	if err := s.producer.PublishOrderCreated(sctx, event); err != nil {
		// The order is already stored; delivery of the event is best effort.
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	if err := s.ledger.store.Delete(ctx, id,
		session.CartSlot,
		session.ActiveOfferSlot,
		session.AppliedCouponSlot,
		session.OrderTotalSlot,
		session.OrderAddressSlot,
	); err != nil {
		s.logger.Error("Failed to clear session after order",
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.logger.Info("Order created successfully",
		zap.String("order_id", order.OrderID),
		zap.String("client_id", order.ClientID),
		zap.String("status", string(order.Status)),
		zap.String("grand_total", order.Totals.GrandTotal.StringFixed(2)))

	return order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.orders.GetOrder(gctx, orderID)
}
