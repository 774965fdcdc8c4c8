package events

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

type OrderCreatedEvent struct {
	EventID       string            `json:"event_id"`
	OrderID       string            `json:"order_id"`
	ClientID      string            `json:"client_id"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
	Items         []domain.CartLine `json:"items"`
	OfferID       string            `json:"offer_id,omitempty"`
	CouponCode    string            `json:"coupon_code,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
	Timestamp     time.Time         `json:"timestamp"`
	RequestID     string            `json:"request_id"`
}

// CatalogChangedEvent is emitted by the back office whenever a product,
// option, offer or coupon is written.
type CatalogChangedEvent struct {
	EventID   string    `json:"event_id"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
