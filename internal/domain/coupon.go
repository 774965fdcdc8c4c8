package domain

import "time"

const DateLayout = "2006-01-02"

// Coupon is the stored coupon record.
type Coupon struct {
	Code            string `json:"code"`
	Name            string `json:"name,omitempty"`
	DiscountPercent int    `json:"discount_percent"`
	Active          bool   `json:"active"`
	ExpiresOn       string `json:"expires_on"` // YYYY-MM-DD
}

// ExpiredOn reports whether the expiry date is strictly before the
// calendar day of now in loc. A malformed date counts as expired.
func (c Coupon) ExpiredOn(now time.Time, loc *time.Location) bool {
	expiry, err := time.ParseInLocation(DateLayout, c.ExpiresOn, loc)
	if err != nil {
		return true
	}
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return expiry.Before(today)
}

// AppliedCoupon is the session record of a validated coupon.
type AppliedCoupon struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}
