package service

import "errors"

// Validation
var (
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidCustomization = errors.New("customization not offered for this product")
	ErrCouponCodeRequired   = errors.New("enter a coupon code")
	ErrInvalidAddress       = errors.New("address is incomplete")
	ErrInvalidCustomer      = errors.New("customer data is incomplete")
	ErrInvalidPayment       = errors.New("unsupported payment method")
	ErrInsufficientCash     = errors.New("cash tendered is less than the total")
	ErrCartEmpty            = errors.New("cart is empty")
)

// Not found
var (
	ErrProductNotFound = errors.New("product not found")
	ErrLineNotFound    = errors.New("cart line not found")
)

// Conflicts
var (
	ErrConfirmationRequired   = errors.New("this action replaces the cart and must be confirmed")
	ErrOfferUnavailable       = errors.New("offer is no longer available")
	ErrCouponLookupInFlight   = errors.New("a coupon lookup is already in progress")
	ErrCheckoutSessionMissing = errors.New("checkout session missing, restart from the cart")
	ErrCheckoutStale          = errors.New("cart changed since checkout started")
)

// Coupon rejections
var (
	ErrCouponNotFound = errors.New("coupon invalid or not found")
	ErrCouponInactive = errors.New("coupon is no longer active")
	ErrCouponExpired  = errors.New("coupon expired")
)

// ErrLookupFailed marks a transient failure of an external lookup. The
// caller may retry.
var ErrLookupFailed = errors.New("lookup failed, try again")
