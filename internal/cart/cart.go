package cart

import (
	"github.com/shopspring/decimal"
)

// Cart is the authoritative cart as the backend cart service returns it.
// One cart per user; the gateway only caches it.
type Cart struct {
	ID        string `json:"cartId"`
	UserID    string `json:"userId"`
	Items     []Item `json:"items"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// Item is one authoritative cart line. It deliberately carries no display
// fields; those live on EnrichedItem and are never sent back upstream.
type Item struct {
	ProductID  string `json:"productId"`
	VariantSKU string `json:"variantSku"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
}

// EnrichedItem is the read-time projection of an Item joined against the
// product cache. Pointer fields stay nil when the join could not resolve
// the product or variant — the UI shows the item degraded instead.
type EnrichedItem struct {
	Item
	ProductName *string          `json:"productName,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

type EnrichedCart struct {
	Cart  Cart            `json:"cart"`
	Items []EnrichedItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}
