package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// freshFor is how long a fetched cart is served from memory before the next
// Get goes back to the cart service.
const freshFor = 60 * time.Second

type cachedCart struct {
	cart         Cart
	fetchedAt    time.Time
	fromSnapshot bool
}

// Store is the cart state container. The server stays the source of truth;
// the store keeps the last-fetched cart per user inside a short freshness
// window, seeds cold sessions from the durable snapshot, and writes every
// successful mutation back to both caches.
type Store struct {
	mu        sync.RWMutex
	client    Client
	snapshots SnapshotStore
	status    *reqstate.Tracker
	carts     map[string]cachedCart

	// now is swappable so tests can move the clock
	now func() time.Time
}

func NewStore(client Client, snapshots SnapshotStore) *Store {
	return &Store{
		client:    client,
		snapshots: snapshots,
		status:    reqstate.NewTracker(),
		carts:     make(map[string]cachedCart),
		now:       time.Now,
	}
}

// Get returns the user's cart. Within the freshness window the cached copy
// is returned without a network call. A cold session is served from the
// snapshot first; the snapshot copy counts as stale, so the next Get
// refreshes it from the cart service.
func (s *Store) Get(ctx context.Context, userID string) (Cart, error) {
	s.mu.RLock()
	entry, ok := s.carts[userID]
	s.mu.RUnlock()

	if ok && !entry.fromSnapshot && s.now().Sub(entry.fetchedAt) < freshFor {
		return entry.cart, nil
	}

	if !ok {
		if snap, found, err := s.snapshots.Load(ctx, userID); err != nil {
			fmt.Printf("warning: cart snapshot load failed for user %s: %v\n", userID, err)
		} else if found {
			s.mu.Lock()
			s.carts[userID] = cachedCart{cart: snap, fetchedAt: s.now(), fromSnapshot: true}
			s.mu.Unlock()
			return snap, nil
		}
	}

	return s.refresh(ctx, userID)
}

func (s *Store) refresh(ctx context.Context, userID string) (Cart, error) {
	key := "fetch:" + userID
	tok := s.status.Begin(key)
	fetched, err := s.client.Fetch(ctx, userID)
	fresh := s.status.Done(key, tok, err)
	if !fresh {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if entry, ok := s.carts[userID]; ok {
			return entry.cart, nil
		}
		return Cart{}, err
	}
	if err == ErrNotFound {
		// no cart yet is not an error for the UI; hand back an empty one
		empty := Cart{UserID: userID, Items: []Item{}}
		s.put(ctx, userID, empty)
		return empty, nil
	}
	if err != nil {
		return Cart{}, err
	}

	s.put(ctx, userID, fetched)
	return fetched, nil
}

// AddItem, UpdateQuantity and RemoveItem always go upstream; the returned
// cart replaces the cached one and restarts the freshness window.
func (s *Store) AddItem(ctx context.Context, userID string, item Item) (Cart, error) {
	return s.mutate(ctx, "add:"+userID, userID, item, s.client.AddItem)
}

func (s *Store) UpdateQuantity(ctx context.Context, userID string, item Item) (Cart, error) {
	return s.mutate(ctx, "update:"+userID, userID, item, s.client.UpdateQuantity)
}

func (s *Store) RemoveItem(ctx context.Context, userID string, item Item) (Cart, error) {
	return s.mutate(ctx, "remove:"+userID, userID, item, s.client.RemoveItem)
}

type mutateFn func(ctx context.Context, userID string, item Item) (Cart, error)

func (s *Store) mutate(ctx context.Context, key, userID string, item Item, fn mutateFn) (Cart, error) {
	tok := s.status.Begin(key)
	updated, err := fn(ctx, userID, item)
	s.status.Done(key, tok, err)
	if err != nil {
		return Cart{}, err
	}

	s.put(ctx, userID, updated)
	return updated, nil
}

func (s *Store) put(ctx context.Context, userID string, c Cart) {
	s.mu.Lock()
	s.carts[userID] = cachedCart{cart: c, fetchedAt: s.now()}
	s.mu.Unlock()

	// snapshot write is best effort; the in-memory copy already serves reads
	if err := s.snapshots.Save(ctx, userID, c); err != nil {
		fmt.Printf("warning: cart snapshot save failed for user %s: %v\n", userID, err)
	}
}

// Invalidate drops the cached cart so the next Get refetches, e.g. after
// checkout completes elsewhere.
func (s *Store) Invalidate(ctx context.Context, userID string) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
	if err := s.snapshots.Clear(ctx, userID); err != nil {
		fmt.Printf("warning: cart snapshot clear failed for user %s: %v\n", userID, err)
	}
}

func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
