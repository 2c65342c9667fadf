package activity

import (
	"context"
	"fmt"
	"sync"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// Store caches activity feed pages under a composite user+page key.
// Appending drops the user's cached pages so the feed picks up the new
// entry on the next read.
type Store struct {
	mu     sync.RWMutex
	client Client
	pages  map[string][]Entry
	status *reqstate.Tracker
}

func NewStore(client Client) *Store {
	return &Store{
		client: client,
		pages:  make(map[string][]Entry),
		status: reqstate.NewTracker(),
	}
}

func pageKey(userID string, page int) string {
	return fmt.Sprintf("activity_%s_%d", userID, page)
}

func (s *Store) Page(ctx context.Context, userID string, page int) ([]Entry, error) {
	key := pageKey(userID, page)
	s.mu.RLock()
	entries, ok := s.pages[key]
	s.mu.RUnlock()
	if ok {
		return entries, nil
	}

	tok := s.status.Begin(key)
	fetched, err := s.client.FetchByUser(ctx, userID, page)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return nil, err
	}
	if fresh {
		s.mu.Lock()
		s.pages[key] = fetched
		s.mu.Unlock()
	}
	return fetched, nil
}

func (s *Store) Append(ctx context.Context, userID string, e Entry) (Entry, error) {
	key := "append:" + userID
	tok := s.status.Begin(key)
	created, err := s.client.Append(ctx, userID, e)
	s.status.Done(key, tok, err)
	if err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	prefix := "activity_" + userID + "_"
	for k := range s.pages {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.pages, k)
		}
	}
	s.mu.Unlock()
	return created, nil
}

func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
