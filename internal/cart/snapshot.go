package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// SnapshotStore is the durable cart cache — the gateway's stand-in for the
// browser's local storage. It holds the last known cart per user under a
// fixed key so a fresh session can render a cart before the first network
// round trip. Staleness control stays with the in-memory freshness window;
// snapshots never expire on their own.
type SnapshotStore interface {
	Load(ctx context.Context, userID string) (Cart, bool, error)
	Save(ctx context.Context, userID string, c Cart) error
	Clear(ctx context.Context, userID string) error
}

func snapshotKey(userID string) string {
	return "cart:snapshot:" + userID
}

// RedisSnapshotStore keeps snapshots in Redis as JSON blobs.
type RedisSnapshotStore struct {
	rdb *redis.Client
}

func NewRedisSnapshotStore(rdb *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb}
}

func (s *RedisSnapshotStore) Load(ctx context.Context, userID string) (Cart, bool, error) {
	raw, err := s.rdb.Get(ctx, snapshotKey(userID)).Result()
	if err == redis.Nil {
		return Cart{}, false, nil
	}
	if err != nil {
		return Cart{}, false, err
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, false, fmt.Errorf("corrupt cart snapshot: %w", err)
	}
	return c, true, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, userID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, snapshotKey(userID), raw, 0).Err()
}

func (s *RedisSnapshotStore) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, snapshotKey(userID)).Err()
}

// InMemorySnapshotStore backs tests and local runs without Redis.
type InMemorySnapshotStore struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{carts: make(map[string]Cart)}
}

func (s *InMemorySnapshotStore) Load(ctx context.Context, userID string) (Cart, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[userID]
	return c, ok, nil
}

func (s *InMemorySnapshotStore) Save(ctx context.Context, userID string, c Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = c
	return nil
}

func (s *InMemorySnapshotStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
