package inventory

import (
	"context"
	"testing"
)

type fakeInventoryClient struct {
	items        map[string][]Item
	pages        map[int][]Item
	pageCalls    int
	productCalls int
}

func (f *fakeInventoryClient) FetchAll(ctx context.Context, page int) ([]Item, error) {
	f.pageCalls++
	return f.pages[page], nil
}

func (f *fakeInventoryClient) FetchByProduct(ctx context.Context, productID string) ([]Item, error) {
	f.productCalls++
	items, ok := f.items[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return items, nil
}

func (f *fakeInventoryClient) AddStock(ctx context.Context, adj Adjustment) (Item, error) {
	return Item{ProductID: adj.ProductID, VariantSKU: adj.VariantSKU, Stock: 10 + adj.Amount, AvailableStock: -1}, nil
}

func (f *fakeInventoryClient) ReduceStock(ctx context.Context, adj Adjustment) (Item, error) {
	return Item{ProductID: adj.ProductID, VariantSKU: adj.VariantSKU, Stock: 10 - adj.Amount, AvailableStock: -1}, nil
}

func (f *fakeInventoryClient) UpdateStock(ctx context.Context, adj Adjustment) (Item, error) {
	return Item{ProductID: adj.ProductID, VariantSKU: adj.VariantSKU, Stock: adj.Amount, AvailableStock: -1}, nil
}

func seededInventory() *fakeInventoryClient {
	i1 := Item{ProductID: "p1", VariantSKU: "TS-RED", Stock: 10, ReservedStock: 2, AvailableStock: 8}
	i2 := Item{ProductID: "p1", VariantSKU: "TS-BLUE", Stock: 5, ReservedStock: 0, AvailableStock: -1}
	return &fakeInventoryClient{
		items: map[string][]Item{"p1": {i1, i2}},
		pages: map[int][]Item{1: {i1, i2}},
	}
}

func TestPageBucketCached(t *testing.T) {
	client := seededInventory()
	s := NewStore(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		items, err := s.Page(ctx, 1)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %d", len(items))
		}
	}
	if client.pageCalls != 1 {
		t.Errorf("expected 1 upstream call, got %d", client.pageCalls)
	}
}

func TestMutationDropsEveryBucket(t *testing.T) {
	client := seededInventory()
	s := NewStore(client)
	ctx := context.Background()

	if _, err := s.Page(ctx, 1); err != nil {
		t.Fatalf("seed page: %v", err)
	}
	if _, err := s.ByProduct(ctx, "p1"); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	if _, err := s.AddStock(ctx, Adjustment{ProductID: "p1", VariantSKU: "TS-RED", Amount: 5}); err != nil {
		t.Fatalf("add stock: %v", err)
	}

	if _, err := s.Page(ctx, 1); err != nil {
		t.Fatalf("reread page: %v", err)
	}
	if _, err := s.ByProduct(ctx, "p1"); err != nil {
		t.Fatalf("reread product: %v", err)
	}
	if client.pageCalls != 2 || client.productCalls != 2 {
		t.Errorf("expected refetch after mutation, got page=%d product=%d", client.pageCalls, client.productCalls)
	}
}

func TestAvailablePrefersServerFigure(t *testing.T) {
	withFigure := Item{Stock: 10, ReservedStock: 2, AvailableStock: 7}
	if got := withFigure.Available(); got != 7 {
		t.Errorf("expected the service's figure 7, got %d", got)
	}

	derived := Item{Stock: 10, ReservedStock: 2, AvailableStock: -1}
	if got := derived.Available(); got != 8 {
		t.Errorf("expected derived 8, got %d", got)
	}

	overReserved := Item{Stock: 3, ReservedStock: 5, AvailableStock: -1}
	if got := overReserved.Available(); got != 0 {
		t.Errorf("available never goes negative, got %d", got)
	}
}

func TestByProductNotFound(t *testing.T) {
	s := NewStore(seededInventory())
	if _, err := s.ByProduct(context.Background(), "p9"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
