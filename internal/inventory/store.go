package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// Store is the admin inventory container: page buckets for the stock
// listing, a per-product bucket for the product drill-down, both dropped
// wholesale after any stock mutation.
type Store struct {
	mu        sync.RWMutex
	client    Client
	pages     map[int][]Item
	byProduct map[string][]Item
	status    *reqstate.Tracker
}

func NewStore(client Client) *Store {
	return &Store{
		client:    client,
		pages:     make(map[int][]Item),
		byProduct: make(map[string][]Item),
		status:    reqstate.NewTracker(),
	}
}

func (s *Store) Page(ctx context.Context, page int) ([]Item, error) {
	s.mu.RLock()
	items, ok := s.pages[page]
	s.mu.RUnlock()
	if ok {
		return items, nil
	}

	key := fmt.Sprintf("page:%d", page)
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchAll(ctx, page)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return nil, err
	}
	if fresh {
		s.mu.Lock()
		s.pages[page] = fetched
		s.mu.Unlock()
	}
	return fetched, nil
}

func (s *Store) ByProduct(ctx context.Context, productID string) ([]Item, error) {
	s.mu.RLock()
	items, ok := s.byProduct[productID]
	s.mu.RUnlock()
	if ok {
		return items, nil
	}

	key := "product:" + productID
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchByProduct(ctx, productID)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return nil, err
	}
	if fresh {
		s.mu.Lock()
		s.byProduct[productID] = fetched
		s.mu.Unlock()
	}
	return fetched, nil
}

func (s *Store) AddStock(ctx context.Context, adj Adjustment) (Item, error) {
	return s.mutate(ctx, "add", adj, s.client.AddStock)
}

func (s *Store) ReduceStock(ctx context.Context, adj Adjustment) (Item, error) {
	return s.mutate(ctx, "reduce", adj, s.client.ReduceStock)
}

func (s *Store) UpdateStock(ctx context.Context, adj Adjustment) (Item, error) {
	return s.mutate(ctx, "update", adj, s.client.UpdateStock)
}

func (s *Store) mutate(ctx context.Context, op string, adj Adjustment, fn func(context.Context, Adjustment) (Item, error)) (Item, error) {
	key := op + ":" + adj.VariantSKU
	tok := s.status.Begin(key)
	item, err := fn(ctx, adj)
	s.status.Done(key, tok, err)
	if err != nil {
		return Item{}, err
	}

	// stock moved; every cached listing may now be wrong
	s.mu.Lock()
	s.pages = make(map[int][]Item)
	delete(s.byProduct, adj.ProductID)
	s.mu.Unlock()
	return item, nil
}

func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
