package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/pricing"
	"github.com/Arthur-DiasP/Delivery/internal/session"
)

// CartView is what every cart operation returns: fresh state and the
// totals computed from it.
type CartView struct {
	Lines            []domain.CartLine     `json:"lines"`
	ItemCount        int                   `json:"item_count"`
	Offer            *domain.ActiveOffer   `json:"offer,omitempty"`
	Coupon           *domain.AppliedCoupon `json:"coupon,omitempty"`
	Totals           domain.OrderTotals    `json:"totals"`
	CouponsEnabled   bool                  `json:"coupons_enabled"`
	OfferInvalidated bool                  `json:"offer_invalidated"`
	Message          string                `json:"message,omitempty"`
}

const lockStripes = 64

// Ledger reads and writes the three pricing slots and serializes the
// mutations of one client.
type Ledger struct {
	store session.Store
	fees  pricing.Fees
	locks [lockStripes]sync.Mutex
}

func NewLedger(store session.Store, fees pricing.Fees) *Ledger {
	return &Ledger{store: store, fees: fees}
}

func (l *Ledger) lock(id session.Identity) func() {
	h := fnv.New32a()
	h.Write([]byte(id.ClientID))
	m := &l.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

func (l *Ledger) load(ctx context.Context, id session.Identity) (pricing.State, error) {
	var st pricing.State

	cart := domain.Cart{}
	if _, err := l.store.Load(ctx, id, session.CartSlot, &cart); err != nil {
		return st, fmt.Errorf("failed to load cart: %w", err)
	}
	st.Cart = cart

	var offer domain.ActiveOffer
	ok, err := l.store.Load(ctx, id, session.ActiveOfferSlot, &offer)
	if err != nil {
		return st, fmt.Errorf("failed to load active offer: %w", err)
	}
	if ok {
		st.Offer = &offer
	}

	var coupon domain.AppliedCoupon
	ok, err = l.store.Load(ctx, id, session.AppliedCouponSlot, &coupon)
	if err != nil {
		return st, fmt.Errorf("failed to load applied coupon: %w", err)
	}
	if ok {
		st.Coupon = &coupon
	}
	return st, nil
}

func (l *Ledger) saveCart(ctx context.Context, id session.Identity, cart domain.Cart) error {
	if len(cart) == 0 {
		return l.store.Delete(ctx, id, session.CartSlot)
	}
	return l.store.Save(ctx, id, session.CartSlot, cart)
}

// dropOffer deletes the active offer record ahead of a cart mutation.
// It reports whether there was one.
func (l *Ledger) dropOffer(ctx context.Context, id session.Identity, st *pricing.State) (bool, error) {
	if st.Offer == nil {
		return false, nil
	}
	if err := l.store.Delete(ctx, id, session.ActiveOfferSlot); err != nil {
		return false, fmt.Errorf("failed to clear active offer: %w", err)
	}
	st.Offer = nil
	return true, nil
}

func (l *Ledger) clearCoupon(ctx context.Context, id session.Identity) error {
	if err := l.store.Delete(ctx, id, session.AppliedCouponSlot); err != nil {
		return fmt.Errorf("failed to clear coupon: %w", err)
	}
	return nil
}

// reconcile computes totals and persists the normalized state.
func (l *Ledger) reconcile(ctx context.Context, id session.Identity, st pricing.State) (pricing.State, domain.OrderTotals, error) {
	normalized, totals := pricing.Reconcile(st, l.fees)
	if st.Coupon != nil && normalized.Coupon == nil {
		if err := l.clearCoupon(ctx, id); err != nil {
			return normalized, totals, err
		}
	}
	return normalized, totals, nil
}

func (l *Ledger) view(ctx context.Context, id session.Identity, st pricing.State) (*CartView, error) {
	normalized, totals, err := l.reconcile(ctx, id, st)
	if err != nil {
		return nil, err
	}
	return &CartView{
		Lines:          normalized.Cart.Lines(),
		ItemCount:      normalized.Cart.ItemCount(),
		Offer:          normalized.Offer,
		Coupon:         normalized.Coupon,
		Totals:         totals,
		CouponsEnabled: normalized.Offer == nil,
	}, nil
}
