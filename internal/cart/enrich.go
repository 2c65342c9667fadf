package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/storefront-gateway/internal/catalog"
)

// ProductLookup is what the enricher needs from the product container. The
// batch form lets one cart render with a single upstream call for all the
// products the cache is missing.
type ProductLookup interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]catalog.Product, error)
}

// Enrich joins the authoritative cart against the product cache to produce
// the renderable cart. A failed join never drops the item and never fails
// the cart: the item keeps nil display fields and the UI shows it degraded.
func Enrich(ctx context.Context, c Cart, products ProductLookup) EnrichedCart {
	ids := make([]string, 0, len(c.Items))
	seen := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	byID, err := products.GetByIDs(ctx, ids)
	if err != nil {
		fmt.Printf("warning: cart enrichment lookup failed: %v\n", err)
	}

	out := EnrichedCart{Cart: c, Items: make([]EnrichedItem, 0, len(c.Items))}
	for _, it := range c.Items {
		enriched := EnrichedItem{Item: it}
		p, ok := byID[it.ProductID]
		if !ok {
			fmt.Printf("warning: cart item %s references unknown product %s\n", it.VariantSKU, it.ProductID)
			out.Items = append(out.Items, enriched)
			continue
		}
		v, ok := p.VariantBySKU(it.VariantSKU)
		if !ok {
			fmt.Printf("warning: cart item references unknown variant %s of product %s\n", it.VariantSKU, it.ProductID)
			out.Items = append(out.Items, enriched)
			continue
		}

		name := p.Name
		enriched.ProductName = &name
		if len(v.Images) > 0 {
			img := v.Images[0]
			enriched.ImageURL = &img
		}
		price := v.DisplayPrice()
		enriched.Price = &price

		// only priced lines count toward the total; degraded items are
		// excluded rather than guessed at
		line := price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		out.Total = out.Total.Add(line)

		out.Items = append(out.Items, enriched)
	}
	return out
}
