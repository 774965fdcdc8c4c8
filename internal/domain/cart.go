package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Customization is what the customer changed on a single cart line.
type Customization struct {
	Removed []string      `json:"removed,omitempty"`
	Added   []AddedOption `json:"added,omitempty"`
	Note    string        `json:"note,omitempty"`
}

type AddedOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (c *Customization) IsEmpty() bool {
	return c == nil || (len(c.Removed) == 0 && len(c.Added) == 0 && c.Note == "")
}

// CartLine is a price-frozen snapshot taken when the item was added.
type CartLine struct {
	LineID        string          `json:"line_id"`
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	ImageURL      string          `json:"image_url,omitempty"`
	Customization *Customization  `json:"customization,omitempty"`
}

func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart maps line id to line.
type Cart map[string]CartLine

// Lines returns the lines ordered by line id.
func (c Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c))
	for _, l := range c {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineID < lines[j].LineID })
	return lines
}

func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
