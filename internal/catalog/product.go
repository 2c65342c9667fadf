package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as served by the backend catalog service.
// The gateway treats it as read-mostly: it is cached by id and by page and
// only the admin endpoints ever write it back.
type Product struct {
	ID          string    `json:"productId"`
	Name        string    `json:"productName"`
	Description string    `json:"description,omitempty"`
	// Price and Discount on the product itself are legacy fields kept for
	// older catalog rows; variant prices are authoritative.
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Gender      string          `json:"gender,omitempty"`
	SKU         string          `json:"sku"`
	Tags        []string        `json:"tags,omitempty"`
	RatingAvg   float64         `json:"ratingAvg"`
	RatingCount int             `json:"ratingCount"`
	Variants    []Variant       `json:"variants"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// Variant is a color-specific version of a product with its own price,
// discount, images and size/stock breakdown.
type Variant struct {
	Color    string          `json:"color"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	SKU      string          `json:"sku"`
	Quantity int             `json:"quantity"`
	Sizes    []SizeVariant   `json:"sizes,omitempty"`
	Images   []string        `json:"images,omitempty"`
}

type SizeVariant struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// DisplayPrice applies the variant discount to its price, rounded to two
// decimals. It is re-derived on every selection change, never cached.
func (v Variant) DisplayPrice() decimal.Decimal {
	return applyDiscount(v.Price, v.Discount)
}

// HasDiscount reports whether a strikethrough original price should be
// shown next to the display price.
func (v Variant) HasDiscount() bool {
	return v.Discount.IsPositive()
}

// VariantBySKU finds the variant carrying sku; ok is false when the product
// has no such variant.
func (p Product) VariantBySKU(sku string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.SKU == sku {
			return v, true
		}
	}
	return Variant{}, false
}

func applyDiscount(price, discount decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() {
		return price.Round(2)
	}
	cut := price.Mul(discount).Div(decimal.NewFromInt(100))
	return price.Sub(cut).Round(2)
}

// ValidateVariantStock checks the admin-form invariant that a variant's
// aggregate quantity equals the sum of its size quantities. The backend does
// not enforce this universally, so the gateway rejects bad admin submissions
// before they go upstream.
func ValidateVariantStock(v Variant) bool {
	if len(v.Sizes) == 0 {
		return true
	}
	sum := 0
	for _, s := range v.Sizes {
		sum += s.Quantity
	}
	return sum == v.Quantity
}
