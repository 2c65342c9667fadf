package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// Store is the catalog state container. It mediates between the UI-facing
// handlers and the catalog service: every read checks the cache first and
// only goes upstream on a miss, mutations write through and then update
// every cache bucket in one place.
//
// Buckets hold product ids and resolve against byID, so a product has at
// most one authoritative copy no matter how many listings contain it.
type Store struct {
	mu      sync.RWMutex
	client  Client
	byID    map[string]Product
	buckets map[string][]string
	status  *reqstate.Tracker
}

func NewStore(client Client) *Store {
	return &Store{
		client:  client,
		byID:    make(map[string]Product),
		buckets: make(map[string][]string),
		status:  reqstate.NewTracker(),
	}
}

func pageKey(page int) string {
	return fmt.Sprintf("products_page_%d", page)
}

func filterKey(f Filter) string {
	kind, value := f.Kind()
	return fmt.Sprintf("products_page_%s_%s_%d", kind, value, f.Page)
}

// GetByID returns the product from cache when present, otherwise fetches it.
// A stale response (a newer fetch for the same id finished first) is
// discarded in favor of whatever the newer fetch stored.
func (s *Store) GetByID(ctx context.Context, id string) (Product, error) {
	s.mu.RLock()
	p, ok := s.byID[id]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	key := "fetch:" + id
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchByID(ctx, id)
	fresh := s.status.Done(key, tok, err)
	if !fresh {
		return s.cachedOrErr(id)
	}
	if err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	s.byID[fetched.ID] = fetched
	s.mu.Unlock()
	return fetched, nil
}

func (s *Store) cachedOrErr(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return Product{}, ErrNotFound
}

// Page returns one page of the unfiltered catalog, cache-first.
func (s *Store) Page(ctx context.Context, page int) ([]Product, error) {
	return s.bucket(ctx, pageKey(page), func(ctx context.Context) ([]Product, error) {
		return s.client.FetchPage(ctx, page)
	})
}

// Filtered returns one page of a filtered listing, cache-first. The bucket
// key encodes the filter dimension, value and page.
func (s *Store) Filtered(ctx context.Context, f Filter) ([]Product, error) {
	return s.bucket(ctx, filterKey(f), func(ctx context.Context) ([]Product, error) {
		return s.client.FetchFiltered(ctx, f)
	})
}

// GetByIDs resolves a batch of ids, fetching only the ones the cache does
// not hold yet (the cart enrichment path uses this).
func (s *Store) GetByIDs(ctx context.Context, ids []string) (map[string]Product, error) {
	out := make(map[string]Product, len(ids))
	var missing []string

	s.mu.RLock()
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out[id] = p
		} else {
			missing = append(missing, id)
		}
	}
	s.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	key := "fetch-batch"
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchByIDs(ctx, missing)
	fresh := s.status.Done(key, tok, err)
	if err != nil || !fresh {
		// enrichment degrades gracefully, so a partial map is fine
		return out, err
	}

	s.mu.Lock()
	for _, p := range fetched {
		s.byID[p.ID] = p
		out[p.ID] = p
	}
	s.mu.Unlock()
	return out, nil
}

func (s *Store) bucket(ctx context.Context, key string, fetch func(context.Context) ([]Product, error)) ([]Product, error) {
	s.mu.RLock()
	ids, ok := s.buckets[key]
	if ok {
		out := s.resolveLocked(ids)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	tok := s.status.Begin(key)
	items, err := fetch(ctx)
	fresh := s.status.Done(key, tok, err)
	if !fresh {
		// a newer request for this bucket already merged its result
		s.mu.RLock()
		defer s.mu.RUnlock()
		if ids, ok := s.buckets[key]; ok {
			return s.resolveLocked(ids), nil
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	ids = make([]string, 0, len(items))
	for _, p := range items {
		s.byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	s.buckets[key] = ids
	s.mu.Unlock()
	return items, nil
}

// resolveLocked maps bucket ids back to products. Caller holds at least a
// read lock.
func (s *Store) resolveLocked(ids []string) []Product {
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Create writes the product upstream and registers it in the cache. Page
// buckets are dropped rather than patched because the server decides
// listing order.
func (s *Store) Create(ctx context.Context, p Product) (Product, error) {
	key := "create"
	tok := s.status.Begin(key)
	created, err := s.client.Create(ctx, p)
	s.status.Done(key, tok, err)
	if err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	s.byID[created.ID] = created
	s.buckets = make(map[string][]string)
	s.mu.Unlock()
	return created, nil
}

// Update writes the product upstream, then upserts the returned value into
// the by-id cache. Buckets reference products by id, so every paginated
// listing sees the new value immediately — the single place cache
// invalidation happens.
func (s *Store) Update(ctx context.Context, p Product) (Product, error) {
	key := "update:" + p.ID
	tok := s.status.Begin(key)
	updated, err := s.client.Update(ctx, p)
	s.status.Done(key, tok, err)
	if err != nil {
		return Product{}, err
	}

	s.upsert(updated)
	return updated, nil
}

// Delete removes the product upstream and from every bucket that held it.
func (s *Store) Delete(ctx context.Context, id string) error {
	key := "delete:" + id
	tok := s.status.Begin(key)
	err := s.client.Delete(ctx, id)
	s.status.Done(key, tok, err)
	if err != nil {
		return err
	}

	s.remove(id)
	return nil
}

func (s *Store) upsert(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[p.ID] = p
}

func (s *Store) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	for key, ids := range s.buckets {
		kept := ids[:0]
		for _, pid := range ids {
			if pid != id {
				kept = append(kept, pid)
			}
		}
		s.buckets[key] = kept
	}
}

// ClearAll drops every cache bucket. Wired to the explicit "clear all"
// admin action.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]Product)
	s.buckets = make(map[string][]string)
}

// Loading and Err expose per-operation request status for the UI.
func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
