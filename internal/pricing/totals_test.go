package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

var testFees = Fees{Service: decimal.NewFromInt(1), Delivery: decimal.Zero}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pizzaCart(price string, qty int) domain.Cart {
	return domain.Cart{
		"pizza-a": {LineID: "pizza-a", ProductID: "pizza-a", Name: "Pizza A", UnitPrice: dec(price), Quantity: qty},
	}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}

func TestReconcile_PlainCart(t *testing.T) {
	_, totals := Reconcile(State{Cart: pizzaCart("30", 2)}, testFees)

	assertMoney(t, "60", totals.Subtotal)
	assertMoney(t, "0", totals.Discount)
	assertMoney(t, "1", totals.ServiceFee)
	assertMoney(t, "0", totals.DeliveryFee)
	assertMoney(t, "61", totals.GrandTotal)
}

func TestReconcile_SubtotalIsSumOfLines(t *testing.T) {
	cart := domain.Cart{
		"a": {LineID: "a", UnitPrice: dec("12.50"), Quantity: 3},
		"b": {LineID: "b", UnitPrice: dec("7.99"), Quantity: 1},
		"c": {LineID: "c", UnitPrice: dec("0.01"), Quantity: 10},
	}

	_, totals := Reconcile(State{Cart: cart}, testFees)

	assertMoney(t, "45.59", totals.Subtotal)
	assertMoney(t, Subtotal(cart).String(), totals.Subtotal)
}

func TestReconcile_Coupon(t *testing.T) {
	s := State{
		Cart:   pizzaCart("30", 2),
		Coupon: &domain.AppliedCoupon{Code: "DEZ10", DiscountPercent: 10},
	}

	next, totals := Reconcile(s, testFees)

	assertMoney(t, "6", totals.Discount)
	assertMoney(t, "55", totals.GrandTotal)
	require.NotNil(t, next.Coupon)
}

func TestReconcile_OfferIgnoresCartAndCoupon(t *testing.T) {
	s := State{
		Cart:   pizzaCart("30", 5),
		Offer:  &domain.ActiveOffer{ID: "combo", FixedPrice: dec("25")},
		Coupon: &domain.AppliedCoupon{Code: "METADE", DiscountPercent: 50},
	}

	_, totals := Reconcile(s, testFees)

	assertMoney(t, "25", totals.Subtotal)
	assertMoney(t, "0", totals.Discount)
	assertMoney(t, "26", totals.GrandTotal)
}

func TestReconcile_EmptyCartDropsCoupon(t *testing.T) {
	s := State{
		Cart:   domain.Cart{},
		Coupon: &domain.AppliedCoupon{Code: "DEZ10", DiscountPercent: 10},
	}

	next, totals := Reconcile(s, testFees)

	assert.Nil(t, next.Coupon)
	assertMoney(t, "0", totals.Subtotal)
	assertMoney(t, "1", totals.GrandTotal)
}

func TestReconcile_OfferKeepsStoredCoupon(t *testing.T) {
	s := State{
		Cart:   domain.Cart{},
		Offer:  &domain.ActiveOffer{ID: "combo", FixedPrice: dec("0")},
		Coupon: &domain.AppliedCoupon{Code: "DEZ10", DiscountPercent: 10},
	}

	next, _ := Reconcile(s, testFees)

	assert.NotNil(t, next.Coupon)
}

func TestReconcile_GrandTotalFloor(t *testing.T) {
	s := State{
		Cart:   pizzaCart("10", 1),
		Coupon: &domain.AppliedCoupon{Code: "FULL", DiscountPercent: 100},
	}
	negativeFees := Fees{Service: dec("-5"), Delivery: decimal.Zero}

	_, totals := Reconcile(s, negativeFees)

	assertMoney(t, "0", totals.GrandTotal)
}

func TestReconcile_Idempotent(t *testing.T) {
	s := State{
		Cart:   pizzaCart("33.33", 3),
		Coupon: &domain.AppliedCoupon{Code: "SETE", DiscountPercent: 7},
	}

	s1, t1 := Reconcile(s, testFees)
	s2, t2 := Reconcile(s1, testFees)

	assert.Equal(t, t1.GrandTotal.String(), t2.GrandTotal.String())
	assert.Equal(t, t1.Discount.String(), t2.Discount.String())
	assert.Equal(t, s1.Coupon, s2.Coupon)
}

func TestDiscount(t *testing.T) {
	cases := []struct {
		subtotal string
		percent  int
		want     string
	}{
		{"60", 10, "6"},
		{"99.99", 15, "15"},
		{"10", 0, "0"},
		{"10", -3, "0"},
		{"10", 150, "10"},
	}
	for _, tc := range cases {
		assertMoney(t, tc.want, Discount(dec(tc.subtotal), tc.percent))
	}
}
