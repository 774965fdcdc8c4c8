package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/pricing"
	"github.com/Arthur-DiasP/Delivery/internal/session"
)

const customizedSuffix = " (customized)"

type AddItemCommand struct {
	ProductID string   `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity"`
	Removed   []string `json:"removed"`
	OptionIDs []string `json:"option_ids"`
	Note      string   `json:"note"`
}

type CartService struct {
	ledger  *Ledger
	catalog Catalog
	logger  *zap.Logger
	now     func() time.Time
}

func NewCartService(ledger *Ledger, catalog Catalog, logger *zap.Logger) *CartService {
	return &CartService{
		ledger:  ledger,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *CartService) View(ctx context.Context, id session.Identity) (*CartView, error) {
	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ledger.view(ctx, id, st)
}

// AddItem validates the requested customization against the product
// before anything is written. A customized line is keyed by its content,
// so equal customizations collapse into one line.
func (s *CartService) AddItem(ctx context.Context, id session.Identity, cmd AddItemCommand) (*CartView, error) {
	if cmd.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, ok := s.catalog.Product(cmd.ProductID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, cmd.ProductID)
	}
	custom, err := buildCustomization(product, cmd)
	if err != nil {
		return nil, err
	}

	unlock := s.ledger.lock(id)
	defer unlock()

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	invalidated, err := s.ledger.dropOffer(ctx, id, &st)
	if err != nil {
		return nil, err
	}

	lineID := pricing.LineID(product.ID, custom)
	line, exists := st.Cart[lineID]
	if exists {
		line.Quantity += cmd.Quantity
	} else {
		line = domain.CartLine{
			LineID:        lineID,
			ProductID:     product.ID,
			Name:          product.Name,
			UnitPrice:     pricing.UnitPrice(product.Price, custom),
			Quantity:      cmd.Quantity,
			ImageURL:      product.ImageURL,
			Customization: custom,
		}
		if custom != nil {
			line.Name += customizedSuffix
		}
	}
	st.Cart[lineID] = line

	if err := s.ledger.saveCart(ctx, id, st.Cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Info("Item added to cart",
		zap.String("client_id", id.ClientID),
		zap.String("line_id", lineID),
		zap.Int("quantity", line.Quantity),
		zap.Bool("offer_invalidated", invalidated))

	return s.respond(ctx, id, st, invalidated)
}

func buildCustomization(product domain.Product, cmd AddItemCommand) (*domain.Customization, error) {
	c := &domain.Customization{Note: cmd.Note}
	for _, r := range cmd.Removed {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if !product.Customization.CanRemove(r) {
			return nil, fmt.Errorf("%w: cannot remove %q", ErrInvalidCustomization, r)
		}
		c.Removed = append(c.Removed, r)
	}
	for _, optID := range cmd.OptionIDs {
		opt, ok := product.Customization.Option(optID)
		if !ok {
			return nil, fmt.Errorf("%w: option %q", ErrInvalidCustomization, optID)
		}
		c.Added = append(c.Added, domain.AddedOption{Name: opt.Name, Price: opt.Price})
	}
	return pricing.Canonical(c), nil
}

// ChangeQuantity applies delta to a line; a line that reaches zero is
// removed. The active offer is dropped even when the line is unknown.
func (s *CartService) ChangeQuantity(ctx context.Context, id session.Identity, lineID string, delta int) (*CartView, error) {
	if delta == 0 {
		return nil, ErrInvalidQuantity
	}

	unlock := s.ledger.lock(id)
	defer unlock()

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	invalidated, err := s.ledger.dropOffer(ctx, id, &st)
	if err != nil {
		return nil, err
	}

	line, ok := st.Cart[lineID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	line.Quantity += delta
	if line.Quantity <= 0 {
		delete(st.Cart, lineID)
	} else {
		st.Cart[lineID] = line
	}

	if err := s.ledger.saveCart(ctx, id, st.Cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return s.respond(ctx, id, st, invalidated)
}

func (s *CartService) RemoveLine(ctx context.Context, id session.Identity, lineID string) (*CartView, error) {
	unlock := s.ledger.lock(id)
	defer unlock()

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	invalidated, err := s.ledger.dropOffer(ctx, id, &st)
	if err != nil {
		return nil, err
	}

	if _, ok := st.Cart[lineID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	delete(st.Cart, lineID)

	if err := s.ledger.saveCart(ctx, id, st.Cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return s.respond(ctx, id, st, invalidated)
}

// ApplyOffer replaces the cart with the offer bundle. A non-empty cart is
// only replaced when confirmed. Any applied coupon is cleared.
func (s *CartService) ApplyOffer(ctx context.Context, id session.Identity, offerID string, confirmed bool) (*CartView, error) {
	offer, ok := s.catalog.Offer(offerID)
	if !ok || !offer.ValidAt(s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrOfferUnavailable, offerID)
	}
	cart := pricing.OfferCart(offer, s.catalog.Product)
	if len(cart) == 0 {
		return nil, fmt.Errorf("%w: %s has no products in the catalog", ErrOfferUnavailable, offerID)
	}

	unlock := s.ledger.lock(id)
	defer unlock()

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(st.Cart) > 0 && !confirmed {
		return nil, ErrConfirmationRequired
	}

	active := pricing.ActiveOfferOf(offer)
	if err := s.ledger.saveCart(ctx, id, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	if err := s.ledger.store.Save(ctx, id, session.ActiveOfferSlot, active); err != nil {
		return nil, fmt.Errorf("failed to save active offer: %w", err)
	}
	if err := s.ledger.clearCoupon(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("Offer applied",
		zap.String("client_id", id.ClientID),
		zap.String("offer_id", offer.ID),
		zap.String("fixed_price", active.FixedPrice.StringFixed(2)))

	return s.ledger.view(ctx, id, pricing.State{Cart: cart, Offer: active})
}

// RemoveOffer empties the cart along with the offer. Nothing of the cart
// before the offer is restored.
func (s *CartService) RemoveOffer(ctx context.Context, id session.Identity, confirmed bool) (*CartView, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	unlock := s.ledger.lock(id)
	defer unlock()

	if err := s.ledger.store.Delete(ctx, id, session.CartSlot, session.ActiveOfferSlot); err != nil {
		return nil, fmt.Errorf("failed to reset cart: %w", err)
	}
	s.logger.Info("Offer removed, cart reset", zap.String("client_id", id.ClientID))

	st, err := s.ledger.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.ledger.view(ctx, id, st)
}

func (s *CartService) respond(ctx context.Context, id session.Identity, st pricing.State, invalidated bool) (*CartView, error) {
	view, err := s.ledger.view(ctx, id, st)
	if err != nil {
		return nil, err
	}
	view.OfferInvalidated = invalidated
	if invalidated {
		view.Message = "the offer was removed because the cart changed"
	}
	return view, nil
}
