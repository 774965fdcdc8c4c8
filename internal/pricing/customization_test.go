package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

func TestLineID_PlainProduct(t *testing.T) {
	assert.Equal(t, "calabresa", LineID("calabresa", nil))
	assert.Equal(t, "calabresa", LineID("calabresa", &domain.Customization{}))
	assert.Equal(t, "calabresa", LineID("calabresa", &domain.Customization{Note: "   "}))
}

func TestLineID_OrderInsensitive(t *testing.T) {
	a := &domain.Customization{
		Removed: []string{"cebola", "azeitona"},
		Added: []domain.AddedOption{
			{Name: "Catupiry", Price: dec("5")},
			{Name: "Bacon", Price: dec("4.5")},
		},
		Note: "bem assada",
	}
	b := &domain.Customization{
		Removed: []string{"azeitona", "cebola", "azeitona"},
		Added: []domain.AddedOption{
			{Name: "Bacon", Price: dec("4.50")},
			{Name: "Catupiry", Price: dec("5.00")},
		},
		Note: " bem assada ",
	}

	idA := LineID("calabresa", a)
	idB := LineID("calabresa", b)

	assert.Equal(t, idA, idB)
	assert.True(t, strings.HasPrefix(idA, "calabresa-"))
	assert.Len(t, idA, len("calabresa-")+lineHashLen)
}

func TestLineID_DistinguishesContent(t *testing.T) {
	base := &domain.Customization{Removed: []string{"cebola"}}
	withNote := &domain.Customization{Removed: []string{"cebola"}, Note: "sem sal"}
	otherProduct := LineID("frango", base)

	assert.NotEqual(t, LineID("calabresa", base), LineID("calabresa", withNote))
	assert.NotEqual(t, LineID("calabresa", base), otherProduct)
}

func TestCanonical(t *testing.T) {
	got := Canonical(&domain.Customization{
		Removed: []string{" tomate", "cebola", "", "tomate"},
		Note:    "  ",
	})

	assert.Equal(t, []string{"cebola", "tomate"}, got.Removed)
	assert.Nil(t, got.Added)
	assert.Empty(t, got.Note)
	assert.Nil(t, Canonical(&domain.Customization{Removed: []string{" "}}))
}

func TestUnitPrice(t *testing.T) {
	c := &domain.Customization{
		Removed: []string{"cebola"},
		Added: []domain.AddedOption{
			{Name: "Catupiry", Price: dec("5")},
			{Name: "Oregano", Price: dec("0")},
		},
	}

	assertMoney(t, "40", UnitPrice(dec("35"), c))
	assertMoney(t, "35", UnitPrice(dec("35"), nil))
}
