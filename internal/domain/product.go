package domain

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryPizza   Category = "pizza"
	CategoryEsfiha  Category = "esfiha"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

// Product is a catalog entry. Products are read-only for the storefront.
type Product struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Price         decimal.Decimal    `json:"price"`
	Category      Category           `json:"category"`
	Ingredients   string             `json:"ingredients,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	Customization *CustomizationSpec `json:"customization,omitempty"`
}

// CustomizationSpec lists what a customer may change on a product.
type CustomizationSpec struct {
	Removable  []string `json:"removable,omitempty"`
	Additional []Option `json:"additional,omitempty"`
}

func (s *CustomizationSpec) CanRemove(ingredient string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Removable {
		if r == ingredient {
			return true
		}
	}
	return false
}

func (s *CustomizationSpec) Option(id string) (Option, bool) {
	if s == nil {
		return Option{}, false
	}
	for _, o := range s.Additional {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Option is an add-on with a price delta. A zero price means free.
type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`

	AppliesToPizza  bool `json:"-"`
	AppliesToEsfiha bool `json:"-"`
	AppliesToAll    bool `json:"-"`
}

func (o Option) AppliesTo(c Category) bool {
	switch {
	case o.AppliesToAll:
		return c == CategoryPizza || c == CategoryEsfiha
	case c == CategoryPizza:
		return o.AppliesToPizza
	case c == CategoryEsfiha:
		return o.AppliesToEsfiha
	}
	return false
}
