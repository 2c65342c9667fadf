package wishlist

import (
	"context"
	"sync"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// Store caches each user's wishlist as a product id list. Mutations are
// optimistic about the cached list: the service confirms first, then the
// list is patched in place rather than refetched.
type Store struct {
	mu     sync.RWMutex
	client Client
	lists  map[string][]string
	status *reqstate.Tracker
}

func NewStore(client Client) *Store {
	return &Store{
		client: client,
		lists:  make(map[string][]string),
		status: reqstate.NewTracker(),
	}
}

func (s *Store) Get(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	ids, ok := s.lists[userID]
	s.mu.RUnlock()
	if ok {
		return append([]string(nil), ids...), nil
	}

	key := "fetch:" + userID
	tok := s.status.Begin(key)
	fetched, err := s.client.Fetch(ctx, userID)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return nil, err
	}
	if fresh {
		s.mu.Lock()
		s.lists[userID] = fetched
		s.mu.Unlock()
	}
	return append([]string(nil), fetched...), nil
}

// Contains answers the heart-icon state without a network call when the
// list is cached.
func (s *Store) Contains(ctx context.Context, userID, productID string) (bool, error) {
	ids, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) Add(ctx context.Context, userID, productID string) error {
	key := "add:" + userID
	tok := s.status.Begin(key)
	err := s.client.Add(ctx, userID, productID)
	s.status.Done(key, tok, err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ids, ok := s.lists[userID]; ok {
		for _, id := range ids {
			if id == productID {
				return nil
			}
		}
		s.lists[userID] = append(ids, productID)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, userID, productID string) error {
	key := "remove:" + userID
	tok := s.status.Begin(key)
	err := s.client.Remove(ctx, userID, productID)
	s.status.Done(key, tok, err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ids, ok := s.lists[userID]; ok {
		kept := ids[:0]
		for _, id := range ids {
			if id != productID {
				kept = append(kept, id)
			}
		}
		s.lists[userID] = kept
	}
	return nil
}

func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
