package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNoVariants = errors.New("product has no variants")

// Selection is the state of the product detail view for one chosen variant.
// Every field is derived from the same variant in one step so the UI never
// renders images from one color against the price of another.
type Selection struct {
	ProductID     string          `json:"productId"`
	Color         string          `json:"color"`
	SKU           string          `json:"sku"`
	Slug          string          `json:"slug"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	HasDiscount   bool            `json:"hasDiscount"`
	Sizes         []SizeVariant   `json:"sizes"`
	Images        []string        `json:"images"`
	Route         string          `json:"route"`
}

// Select builds the detail-view state for the variant carrying sku. An empty
// or unknown sku falls back to the product's first variant, which is also
// the initial state right after the product loads.
func Select(p Product, sku string) (Selection, error) {
	if len(p.Variants) == 0 {
		return Selection{}, ErrNoVariants
	}
	v, ok := p.VariantBySKU(sku)
	if !ok && sku != "" {
		// URL segments arrive slugified, so match on the slug form too
		want := Slug(sku)
		for _, cand := range p.Variants {
			if Slug(cand.SKU) == want {
				v, ok = cand, true
				break
			}
		}
	}
	if !ok {
		v = p.Variants[0]
	}
	return fromVariant(p, v), nil
}

// SelectColor is the swatch-click transition: it moves the selection to the
// variant with the given color. Unknown colors keep the first variant.
func SelectColor(p Product, color string) (Selection, error) {
	if len(p.Variants) == 0 {
		return Selection{}, ErrNoVariants
	}
	v := p.Variants[0]
	for _, cand := range p.Variants {
		if strings.EqualFold(cand.Color, color) {
			v = cand
			break
		}
	}
	return fromVariant(p, v), nil
}

func fromVariant(p Product, v Variant) Selection {
	slug := Slug(v.SKU)
	return Selection{
		ProductID:     p.ID,
		Color:         v.Color,
		SKU:           v.SKU,
		Slug:          slug,
		Price:         v.DisplayPrice(),
		OriginalPrice: v.Price.Round(2),
		HasDiscount:   v.HasDiscount(),
		Sizes:         v.Sizes,
		Images:        v.Images,
		Route:         "/products/" + p.ID + "/" + slug,
	}
}

// Slug turns a variant SKU into its URL segment: lowercase, spaces and
// underscores collapsed to dashes.
func Slug(sku string) string {
	s := strings.ToLower(strings.TrimSpace(sku))
	s = strings.ReplaceAll(s, "_", "-")
	return strings.Join(strings.Fields(s), "-")
}
