package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/repository"
	"github.com/Arthur-DiasP/Delivery/internal/session"
)

const couponsDisabledMessage = "coupons cannot be combined with an offer"

type CouponService struct {
	ledger  *Ledger
	coupons CouponFinder
	loc     *time.Location
	timeout time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCouponService(ledger *Ledger, coupons CouponFinder, loc *time.Location, timeout time.Duration, logger *zap.Logger) *CouponService {
	return &CouponService{
		ledger:   ledger,
		coupons:  coupons,
		loc:      loc,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
}

// Apply validates code and stores it as the session coupon. Rejections
// for unknown, inactive or expired coupons also clear the stored one.
// While an offer is active the code is not looked up at all.
func (s *CouponService) Apply(ctx context.Context, id session.Identity, code string) (*CartView, error) {
	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.Offer != nil {
		view, err := s.ledger.view(ctx, id, st)
		if err != nil {
			return nil, err
		}
		view.Message = couponsDisabledMessage
		return view, nil
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrCouponCodeRequired
	}

	release, ok := s.acquire(id.SessionID)
	if !ok {
		return nil, ErrCouponLookupInFlight
	}
	defer release()

	coupon, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if rejection := s.validate(coupon); rejection != nil {
		if err := s.ledger.clearCoupon(ctx, id); err != nil {
			return nil, err
		}
		s.logger.Info("Coupon rejected",
			zap.String("session_id", id.SessionID),
			zap.String("code", code),
			zap.Error(rejection))
		return nil, rejection
	}

	applied := &domain.AppliedCoupon{Code: code, DiscountPercent: coupon.DiscountPercent}
	if err := s.ledger.store.Save(ctx, id, session.AppliedCouponSlot, applied); err != nil {
		return nil, fmt.Errorf("failed to save coupon: %w", err)
	}
	s.logger.Info("Coupon applied",
		zap.String("session_id", id.SessionID),
		zap.String("code", code),
		zap.Int("discount_percent", coupon.DiscountPercent))

	// Reload so a concurrent cart change is reflected in the totals.
	st, err = s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ledger.view(ctx, id, st)
}

// lookup returns a nil coupon when the code does not exist.
func (s *CouponService) lookup(ctx context.Context, code string) (*domain.Coupon, error) {
	lctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	coupon, err := s.coupons.FindCouponByCode(lctx, code)
	switch {
	case errors.Is(err, repository.ErrCouponNotFound):
		return nil, nil
	case err != nil:
		s.logger.Error("Coupon lookup failed", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	return coupon, nil
}

func (s *CouponService) validate(c *domain.Coupon) error {
	switch {
	case c == nil:
		return ErrCouponNotFound
	case !c.Active:
		return ErrCouponInactive
	case c.ExpiredOn(s.now(), s.loc):
		return ErrCouponExpired
	}
	return nil
}

func (s *CouponService) acquire(sessionID string) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return nil, false
	}
	s.inflight[sessionID] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.inflight, sessionID)
		s.mu.Unlock()
	}, true
}

func (s *CouponService) Remove(ctx context.Context, id session.Identity) (*CartView, error) {
	if err := s.ledger.clearCoupon(ctx, id); err != nil {
		return nil, err
	}
	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ledger.view(ctx, id, st)
}
