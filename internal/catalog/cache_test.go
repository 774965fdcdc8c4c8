package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

type fakeSource struct {
	products []domain.Product
	options  []domain.Option
	offers   []domain.Offer
	err      error
}

func (f *fakeSource) ListProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

func (f *fakeSource) ListOptions(context.Context) ([]domain.Option, error) {
	return f.options, f.err
}

func (f *fakeSource) ListOffers(context.Context) ([]domain.Offer, error) {
	return f.offers, f.err
}

var now = time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T, src *fakeSource) *Cache {
	t.Helper()
	c := NewCache(src, zap.NewNop())
	c.now = func() time.Time { return now }
	require.NoError(t, c.Refresh(context.Background()))
	return c
}

func testSource() *fakeSource {
	return &fakeSource{
		products: []domain.Product{
			{ID: "mussarela", Name: "Mussarela", Price: decimal.RequireFromString("40"), Category: domain.CategoryPizza, Ingredients: "queijo, tomate",
				Customization: &domain.CustomizationSpec{Removable: []string{"tomate"}}},
			{ID: "carne", Name: "Esfiha de Carne", Price: decimal.RequireFromString("8"), Category: domain.CategoryEsfiha, Ingredients: "carne moída"},
			{ID: "guarana", Name: "Guaraná", Price: decimal.RequireFromString("12"), Category: domain.CategoryDrink},
		},
		options: []domain.Option{
			{ID: "borda", Name: "Borda recheada", Price: decimal.RequireFromString("9"), AppliesToPizza: true},
			{ID: "limao", Name: "Limão", Price: decimal.Zero, AppliesToEsfiha: true},
			{ID: "catupiry", Name: "Catupiry", Price: decimal.RequireFromString("5"), AppliesToAll: true},
		},
		offers: []domain.Offer{
			{ID: "combo", Name: "Combo", ProductIDs: []string{"mussarela", "guarana"}, Price: decimal.RequireFromString("45"), Active: true, ExpiresAt: now.Add(time.Hour)},
			{ID: "old", Name: "Old", ProductIDs: []string{"mussarela"}, Price: decimal.RequireFromString("30"), Active: true, ExpiresAt: now.Add(-time.Hour)},
		},
	}
}

func TestRefreshAttachesApplicableOptions(t *testing.T) {
	c := newTestCache(t, testSource())

	pizza, ok := c.Product("mussarela")
	require.True(t, ok)
	require.NotNil(t, pizza.Customization)
	assert.Equal(t, []string{"tomate"}, pizza.Customization.Removable)
	var ids []string
	for _, o := range pizza.Customization.Additional {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"borda", "catupiry"}, ids)

	esfiha, ok := c.Product("carne")
	require.True(t, ok)
	_, hasLimao := esfiha.Customization.Option("limao")
	_, hasBorda := esfiha.Customization.Option("borda")
	assert.True(t, hasLimao)
	assert.False(t, hasBorda)

	drink, ok := c.Product("guarana")
	require.True(t, ok)
	assert.Nil(t, drink.Customization)
}

func TestRefreshErrorKeepsSnapshot(t *testing.T) {
	src := testSource()
	c := newTestCache(t, src)

	src.err = errors.New("dynamo down")
	assert.Error(t, c.Refresh(context.Background()))

	_, ok := c.Product("mussarela")
	assert.True(t, ok)
	assert.Equal(t, now, c.LastRefresh())
}

func TestProductsFilterAndOrder(t *testing.T) {
	c := newTestCache(t, testSource())

	all := c.Products("", "")
	require.Len(t, all, 3)
	assert.Equal(t, "Esfiha de Carne", all[0].Name)
	assert.Equal(t, "Mussarela", all[2].Name)

	pizzas := c.Products(domain.CategoryPizza, "")
	require.Len(t, pizzas, 1)
	assert.Equal(t, "mussarela", pizzas[0].ID)

	byIngredient := c.Products("", "  QUEIJO ")
	require.Len(t, byIngredient, 1)
	assert.Equal(t, "mussarela", byIngredient[0].ID)
}

func TestCurrentOffer(t *testing.T) {
	c := newTestCache(t, testSource())

	view, ok := c.CurrentOffer()
	require.True(t, ok)
	assert.Equal(t, "combo", view.ID)
	assert.True(t, view.OriginalPrice.Equal(decimal.RequireFromString("52")))
}

func TestCurrentOfferHidesUnpricedBundle(t *testing.T) {
	src := testSource()
	src.offers = []domain.Offer{
		{ID: "ghost", Name: "Ghost", ProductIDs: []string{"missing"}, Price: decimal.RequireFromString("10"), Active: true, ExpiresAt: now.Add(time.Hour)},
	}
	c := newTestCache(t, src)

	_, ok := c.CurrentOffer()
	assert.False(t, ok)
}
