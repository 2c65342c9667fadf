package rating

import (
	"context"
	"sync"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// Store is the rating state container. Ratings are cached individually and
// referenced from per-product and per-user buckets; averages sit in their
// own cache. A mutation invalidates the buckets it touched instead of
// patching them, the next read refetches.
type Store struct {
	mu        sync.RWMutex
	client    Client
	byID      map[string]Rating
	byProduct map[string][]string
	byUser    map[string][]string
	averages  map[string]Average
	status    *reqstate.Tracker
}

func NewStore(client Client) *Store {
	return &Store{
		client:    client,
		byID:      make(map[string]Rating),
		byProduct: make(map[string][]string),
		byUser:    make(map[string][]string),
		averages:  make(map[string]Average),
		status:    reqstate.NewTracker(),
	}
}

func (s *Store) ByProduct(ctx context.Context, productID string) ([]Rating, error) {
	s.mu.RLock()
	ids, ok := s.byProduct[productID]
	s.mu.RUnlock()
	if ok {
		return s.resolve(ids), nil
	}

	key := "product:" + productID
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchByProduct(ctx, productID)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return nil, err
	}
	if fresh {
		s.fill(fetched, func(ids []string) {
			s.byProduct[productID] = ids
		})
	}
	return fetched, nil
}

func (s *Store) ByUser(ctx context.Context, userID string) ([]Rating, error) {
	s.mu.RLock()
	ids, ok := s.byUser[userID]
	s.mu.RUnlock()
	if ok {
		return s.resolve(ids), nil
	}

	key := "user:" + userID
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchByUser(ctx, userID)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return nil, err
	}
	if fresh {
		s.fill(fetched, func(ids []string) {
			s.byUser[userID] = ids
		})
	}
	return fetched, nil
}

func (s *Store) AverageFor(ctx context.Context, productID string) (Average, error) {
	s.mu.RLock()
	avg, ok := s.averages[productID]
	s.mu.RUnlock()
	if ok {
		return avg, nil
	}

	key := "average:" + productID
	tok := s.status.Begin(key)
	fetched, err := s.client.FetchAverage(ctx, productID)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return Average{}, err
	}
	if fresh {
		s.mu.Lock()
		s.averages[productID] = fetched
		s.mu.Unlock()
	}
	return fetched, nil
}

// ExistingForProduct finds the caller's rating of a product, if any. The UI
// uses it to decide between the "add review" and "edit review" forms.
func (s *Store) ExistingForProduct(ctx context.Context, userID, productID string) (Rating, bool, error) {
	mine, err := s.ByUser(ctx, userID)
	if err != nil {
		return Rating{}, false, err
	}
	for _, r := range mine {
		if r.ProductID == productID {
			return r, true, nil
		}
	}
	return Rating{}, false, nil
}

func (s *Store) Add(ctx context.Context, userID string, r Rating) (Rating, error) {
	if !ValidValue(r.Value) {
		return Rating{}, ErrInvalidValue
	}
	key := "add:" + userID
	tok := s.status.Begin(key)
	created, err := s.client.Add(ctx, userID, r)
	s.status.Done(key, tok, err)
	if err != nil {
		return Rating{}, err
	}
	s.invalidate(created.ProductID, userID)
	return created, nil
}

func (s *Store) Update(ctx context.Context, userID string, r Rating) (Rating, error) {
	if !ValidValue(r.Value) {
		return Rating{}, ErrInvalidValue
	}
	key := "update:" + r.ID
	tok := s.status.Begin(key)
	updated, err := s.client.Update(ctx, userID, r)
	s.status.Done(key, tok, err)
	if err != nil {
		return Rating{}, err
	}
	s.invalidate(updated.ProductID, userID)
	return updated, nil
}

func (s *Store) Remove(ctx context.Context, userID, ratingID, productID string) error {
	key := "remove:" + ratingID
	tok := s.status.Begin(key)
	err := s.client.Remove(ctx, userID, ratingID)
	s.status.Done(key, tok, err)
	if err != nil {
		return err
	}
	s.invalidate(productID, userID)
	return nil
}

func (s *Store) invalidate(productID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byProduct, productID)
	delete(s.byUser, userID)
	delete(s.averages, productID)
}

func (s *Store) fill(ratings []Rating, bind func(ids []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(ratings))
	for _, r := range ratings {
		s.byID[r.ID] = r
		ids = append(ids, r.ID)
	}
	bind(ids)
}

func (s *Store) resolve(ids []string) []Rating {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Rating, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
