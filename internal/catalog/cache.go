// Package catalog keeps the product catalog and offers in memory. The
// cache is refreshed when the catalog changes and on a timer.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
	"github.com/Arthur-DiasP/Delivery/internal/pricing"
)

// Source is where the catalog comes from.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOptions(ctx context.Context) ([]domain.Option, error)
	ListOffers(ctx context.Context) ([]domain.Offer, error)
}

type Cache struct {
	source Source
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	products  map[string]domain.Product
	offers    map[string]domain.Offer
	refreshed time.Time
}

func NewCache(source Source, logger *zap.Logger) *Cache {
	return &Cache{
		source:   source,
		logger:   logger,
		now:      time.Now,
		products: make(map[string]domain.Product),
		offers:   make(map[string]domain.Offer),
	}
}

// Refresh reloads everything. On error the previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context) error {
	products, err := c.source.ListProducts(ctx)
	if err != nil {
		return err
	}
	options, err := c.source.ListOptions(ctx)
	if err != nil {
		return err
	}
	offers, err := c.source.ListOffers(ctx)
	if err != nil {
		return err
	}

	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })

	nextProducts := make(map[string]domain.Product, len(products))
	for _, p := range products {
		nextProducts[p.ID] = withOptions(p, options)
	}
	nextOffers := make(map[string]domain.Offer, len(offers))
	for _, o := range offers {
		nextOffers[o.ID] = o
	}

	c.mu.Lock()
	c.products = nextProducts
	c.offers = nextOffers
	c.refreshed = c.now()
	c.mu.Unlock()

	c.logger.Info("Catalog refreshed",
		zap.Int("products", len(nextProducts)),
		zap.Int("options", len(options)),
		zap.Int("offers", len(nextOffers)))
	return nil
}

// withOptions attaches the add-ons that apply to the product's category.
func withOptions(p domain.Product, options []domain.Option) domain.Product {
	var applicable []domain.Option
	for _, o := range options {
		if o.AppliesTo(p.Category) {
			applicable = append(applicable, o)
		}
	}
	if len(applicable) == 0 {
		return p
	}
	spec := domain.CustomizationSpec{Additional: applicable}
	if p.Customization != nil {
		spec.Removable = p.Customization.Removable
	}
	p.Customization = &spec
	return p
}

// Run refreshes every interval until ctx is done.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil && ctx.Err() == nil {
				c.logger.Error("Periodic catalog refresh failed", zap.Error(err))
			}
		}
	}
}

func (c *Cache) Product(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id]
	return p, ok
}

// Products lists products sorted by name, optionally filtered by category
// and by a case-insensitive search over name and ingredients.
func (c *Cache) Products(category domain.Category, query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))

	c.mu.RLock()
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Ingredients), query) {
			continue
		}
		out = append(out, p)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (c *Cache) Offer(id string) (domain.Offer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.offers[id]
	return o, ok
}

// CurrentOffer is the offer to advertise now. An offer whose products are
// not in the catalog has no original price and is not advertised.
func (c *Cache) CurrentOffer() (domain.OfferView, bool) {
	c.mu.RLock()
	offers := make([]domain.Offer, 0, len(c.offers))
	for _, o := range c.offers {
		offers = append(offers, o)
	}
	c.mu.RUnlock()

	offer, ok := pricing.SelectOffer(offers, c.now())
	if !ok {
		return domain.OfferView{}, false
	}
	original := pricing.OriginalPrice(offer, c.Product)
	if original.IsZero() {
		c.logger.Warn("Offer has no priced products, hiding it", zap.String("offer_id", offer.ID))
		return domain.OfferView{}, false
	}
	return domain.OfferView{Offer: offer, OriginalPrice: original}, true
}

func (c *Cache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}
