package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

func TestOrderRecordKeepsCentsAndCustomization(t *testing.T) {
	created := time.Date(2026, 10, 14, 19, 30, 0, 0, time.UTC)
	order := &domain.Order{
		OrderID:  "order-1",
		ClientID: "client-1",
		Items: []domain.CartLine{
			{
				LineID:    "calabresa-0a1b2c3d4e5f",
				ProductID: "calabresa",
				Name:      "Calabresa (customized)",
				UnitPrice: decimal.RequireFromString("44.90"),
				Quantity:  2,
				Customization: &domain.Customization{
					Removed: []string{"cebola"},
					Added:   []domain.AddedOption{{Name: "Catupiry", Price: decimal.RequireFromString("4.90")}},
				},
			},
			{LineID: "guarana", ProductID: "guarana", Name: "Guaraná", UnitPrice: decimal.RequireFromString("12"), Quantity: 1},
		},
		Totals: domain.OrderTotals{
			Subtotal:   decimal.RequireFromString("101.80"),
			Discount:   decimal.RequireFromString("10.18"),
			ServiceFee: decimal.RequireFromString("1"),
			GrandTotal: decimal.RequireFromString("92.62"),
		},
		PaymentMethod: domain.PaymentPix,
		Status:        domain.OrderStatusPreparing,
		CreatedAt:     created,
		UpdatedAt:     created,
	}

	got := fromOrderRecord(toOrderRecord(order))

	require.Len(t, got.Items, 2)
	assert.True(t, got.Totals.GrandTotal.Equal(order.Totals.GrandTotal))
	assert.True(t, got.Totals.Discount.Equal(order.Totals.Discount))
	assert.True(t, got.Items[0].UnitPrice.Equal(order.Items[0].UnitPrice))
	require.NotNil(t, got.Items[0].Customization)
	assert.Equal(t, []string{"cebola"}, got.Items[0].Customization.Removed)
	assert.True(t, got.Items[0].Customization.Added[0].Price.Equal(decimal.RequireFromString("4.90")))
	assert.Nil(t, got.Items[1].Customization)
	assert.Equal(t, domain.OrderStatusPreparing, got.Status)
	assert.Equal(t, created, got.CreatedAt)
}
