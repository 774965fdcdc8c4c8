// Package pricing reconciles the discount sources of a cart into one
// authoritative total. Everything here is a pure function of its inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

var hundred = decimal.NewFromInt(100)

type Fees struct {
	Service  decimal.Decimal
	Delivery decimal.Decimal
}

// State is everything the totals depend on.
type State struct {
	Cart   domain.Cart
	Offer  *domain.ActiveOffer
	Coupon *domain.AppliedCoupon
}

// Subtotal is the itemized sum of the cart lines.
func Subtotal(cart domain.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range cart {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Reconcile computes the order totals and returns the state they were
// computed from after normalization: a coupon does not survive an
// itemized subtotal of zero. An active offer is the sole subtotal source
// and any coupon is ignored while it is present.
func Reconcile(s State, fees Fees) (State, domain.OrderTotals) {
	var subtotal, discount decimal.Decimal

	if s.Offer != nil {
		subtotal = s.Offer.FixedPrice
		discount = decimal.Zero
	} else {
		subtotal = Subtotal(s.Cart)
		discount = decimal.Zero
		if s.Coupon != nil && subtotal.IsPositive() {
			discount = Discount(subtotal, s.Coupon.DiscountPercent)
		}
		if subtotal.IsZero() {
			s.Coupon = nil
		}
	}

	grand := subtotal.Sub(discount).Add(fees.Service).Add(fees.Delivery)
	if grand.IsNegative() {
		grand = decimal.Zero
	}

	return s, domain.OrderTotals{
		Subtotal:    subtotal.Round(2),
		Discount:    discount,
		ServiceFee:  fees.Service.Round(2),
		DeliveryFee: fees.Delivery.Round(2),
		GrandTotal:  grand.Round(2),
	}
}

// Discount is percent of subtotal, rounded to cents. Percentages outside
// 0..100 are clamped.
func Discount(subtotal decimal.Decimal, percent int) decimal.Decimal {
	if percent <= 0 {
		return decimal.Zero
	}
	if percent > 100 {
		percent = 100
	}
	return subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(hundred).Round(2)
}
