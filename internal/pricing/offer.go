package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

// SelectOffer picks the offer to show: among offers valid at now, the one
// expiring last. Ties go to the smaller id.
func SelectOffer(offers []domain.Offer, now time.Time) (domain.Offer, bool) {
	valid := make([]domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.ValidAt(now) {
			valid = append(valid, o)
		}
	}
	if len(valid) == 0 {
		return domain.Offer{}, false
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if !valid[i].ExpiresAt.Equal(valid[j].ExpiresAt) {
			return valid[i].ExpiresAt.After(valid[j].ExpiresAt)
		}
		return valid[i].ID < valid[j].ID
	})
	return valid[0], true
}

// OriginalPrice is what the bundle would cost at catalog prices. Products
// missing from the catalog count as zero.
func OriginalPrice(offer domain.Offer, lookup func(id string) (domain.Product, bool)) decimal.Decimal {
	sum := decimal.Zero
	for _, id := range offer.ProductIDs {
		if p, ok := lookup(id); ok {
			sum = sum.Add(p.Price)
		}
	}
	return sum
}

// OfferCart builds the cart that replaces the customer's cart when the
// offer is taken: one line per product, repeats aggregated into quantity.
// Catalog prices are kept on the lines for display only.
func OfferCart(offer domain.Offer, lookup func(id string) (domain.Product, bool)) domain.Cart {
	cart := make(domain.Cart)
	for _, id := range offer.ProductIDs {
		p, ok := lookup(id)
		if !ok {
			continue
		}
		if line, exists := cart[p.ID]; exists {
			line.Quantity++
			cart[p.ID] = line
			continue
		}
		cart[p.ID] = domain.CartLine{
			LineID:    p.ID,
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  1,
			ImageURL:  p.ImageURL,
		}
	}
	return cart
}

func ActiveOfferOf(offer domain.Offer) *domain.ActiveOffer {
	ids := make([]string, len(offer.ProductIDs))
	copy(ids, offer.ProductIDs)
	return &domain.ActiveOffer{
		ID:         offer.ID,
		Name:       offer.Name,
		FixedPrice: offer.Price,
		ProductIDs: ids,
	}
}
