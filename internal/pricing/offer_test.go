package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

var catalog = map[string]domain.Product{
	"calabresa": {ID: "calabresa", Name: "Calabresa", Price: dec("40")},
	"guarana":   {ID: "guarana", Name: "Guaraná 2L", Price: dec("12")},
}

func lookup(id string) (domain.Product, bool) {
	p, ok := catalog[id]
	return p, ok
}

func TestSelectOffer(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	offers := []domain.Offer{
		{ID: "expired", Active: true, ExpiresAt: now.Add(-time.Minute)},
		{ID: "inactive", Active: false, ExpiresAt: now.Add(72 * time.Hour)},
		{ID: "soon", Active: true, ExpiresAt: now.Add(time.Hour)},
		{ID: "later-b", Active: true, ExpiresAt: now.Add(48 * time.Hour)},
		{ID: "later-a", Active: true, ExpiresAt: now.Add(48 * time.Hour)},
		{ID: "no-expiry", Active: true},
	}

	got, ok := SelectOffer(offers, now)

	require.True(t, ok)
	assert.Equal(t, "later-a", got.ID)
}

func TestSelectOffer_None(t *testing.T) {
	_, ok := SelectOffer(nil, time.Now())
	assert.False(t, ok)
}

func TestOfferCart_AggregatesRepeats(t *testing.T) {
	offer := domain.Offer{ID: "combo", ProductIDs: []string{"calabresa", "guarana", "calabresa", "missing"}}

	cart := OfferCart(offer, lookup)

	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart["calabresa"].Quantity)
	assert.Equal(t, 1, cart["guarana"].Quantity)
	assertMoney(t, "40", cart["calabresa"].UnitPrice)
}

func TestOriginalPrice(t *testing.T) {
	offer := domain.Offer{ProductIDs: []string{"calabresa", "calabresa", "guarana", "missing"}}

	assertMoney(t, "92", OriginalPrice(offer, lookup))
}

func TestActiveOfferOf(t *testing.T) {
	offer := domain.Offer{ID: "combo", Name: "Combo Família", Price: dec("69.90"), ProductIDs: []string{"calabresa"}}

	active := ActiveOfferOf(offer)
	offer.ProductIDs[0] = "changed"

	assert.Equal(t, "combo", active.ID)
	assertMoney(t, "69.90", active.FixedPrice)
	assert.Equal(t, []string{"calabresa"}, active.ProductIDs)
}
