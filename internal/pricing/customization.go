package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Arthur-DiasP/Delivery/internal/domain"
)

const lineHashLen = 12

// Canonical returns c in a form where equal content means equal value:
// removed names trimmed, de-duplicated and sorted, added options sorted by
// name then price, note trimmed. Nil when nothing is customized.
func Canonical(c *domain.Customization) *domain.Customization {
	if c == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(c.Removed))
	removed := make([]string, 0, len(c.Removed))
	for _, r := range c.Removed {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		removed = append(removed, r)
	}
	sort.Strings(removed)

	added := make([]domain.AddedOption, 0, len(c.Added))
	for _, a := range c.Added {
		added = append(added, domain.AddedOption{Name: strings.TrimSpace(a.Name), Price: a.Price.Round(2)})
	}
	sort.Slice(added, func(i, j int) bool {
		if added[i].Name != added[j].Name {
			return added[i].Name < added[j].Name
		}
		return added[i].Price.LessThan(added[j].Price)
	})

	out := &domain.Customization{Note: strings.TrimSpace(c.Note)}
	if len(removed) > 0 {
		out.Removed = removed
	}
	if len(added) > 0 {
		out.Added = added
	}
	if out.IsEmpty() {
		return nil
	}
	return out
}

// LineID is the product id for plain items, or the product id suffixed
// with a hash of the canonical customization.
func LineID(productID string, c *domain.Customization) string {
	canon := Canonical(c)
	if canon == nil {
		return productID
	}
	return productID + "-" + customizationHash(canon)
}

func customizationHash(c *domain.Customization) string {
	type addedKey struct {
		Name  string `json:"n"`
		Price string `json:"p"`
	}
	key := struct {
		Removed []string   `json:"r"`
		Added   []addedKey `json:"a"`
		Note    string     `json:"o"`
	}{Removed: c.Removed, Note: c.Note}
	for _, a := range c.Added {
		key.Added = append(key.Added, addedKey{Name: a.Name, Price: a.Price.StringFixed(2)})
	}

	// Marshal of plain strings and slices cannot fail.
	raw, _ := json.Marshal(key)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])[:lineHashLen]
}

// UnitPrice is the base price plus every added option's delta.
func UnitPrice(base decimal.Decimal, c *domain.Customization) decimal.Decimal {
	price := base
	if c == nil {
		return price
	}
	for _, a := range c.Added {
		price = price.Add(a.Price)
	}
	return price
}
