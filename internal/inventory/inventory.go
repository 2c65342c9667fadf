package inventory

import "github.com/wichananm65/storefront-gateway/internal/catalog"

// Item is one variant's stock position as the inventory service reports
// it. ReservedStock counts units held by open orders; AvailableStock is
// the service's own sellable figure.
type Item struct {
	ProductID      string                `json:"productId"`
	VariantSKU     string                `json:"variantSku"`
	Color          string                `json:"color,omitempty"`
	Sizes          []catalog.SizeVariant `json:"sizes,omitempty"`
	Stock          int                   `json:"stock"`
	ReservedStock  int                   `json:"reservedStock"`
	AvailableStock int                   `json:"availableStock"`
	UpdatedAt      string                `json:"updatedAt,omitempty"`
}

// Available is what the admin screen shows as sellable. The service's
// figure wins when it reports one; a negative AvailableStock means the
// service did not compute it and we derive stock minus reserved instead.
func (i Item) Available() int {
	if i.AvailableStock >= 0 {
		return i.AvailableStock
	}
	avail := i.Stock - i.ReservedStock
	if avail < 0 {
		return 0
	}
	return avail
}

// Adjustment is the payload for stock mutations.
type Adjustment struct {
	ProductID  string `json:"productId"`
	VariantSKU string `json:"variantSku"`
	Size       string `json:"size,omitempty"`
	Amount     int    `json:"amount"`
}
