package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a time-boxed bundle of products sold at one fixed price.
// ProductIDs may repeat; each repetition is one more unit.
type Offer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	ProductIDs  []string        `json:"product_ids"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

func (o Offer) ValidAt(now time.Time) bool {
	return o.Active && !o.ExpiresAt.IsZero() && o.ExpiresAt.After(now)
}

// ActiveOffer is the session record of an offer placed in the cart.
type ActiveOffer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	FixedPrice decimal.Decimal `json:"fixed_price"`
	ProductIDs []string        `json:"product_ids"`
}

// OfferView is the current offer as shown in the catalog, with the
// undiscounted catalog price of its bundle.
type OfferView struct {
	Offer
	OriginalPrice decimal.Decimal `json:"original_price"`
}
