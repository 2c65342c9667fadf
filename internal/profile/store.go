package profile

import (
	"context"
	"sync"

	"github.com/wichananm65/storefront-gateway/internal/reqstate"
)

// Store caches the signed-in user's profile so repeat visits to account
// pages skip the user service. Sign-in and sign-up always go upstream.
type Store struct {
	mu       sync.RWMutex
	client   Client
	profiles map[string]Profile
	status   *reqstate.Tracker
}

func NewStore(client Client) *Store {
	return &Store{
		client:   client,
		profiles: make(map[string]Profile),
		status:   reqstate.NewTracker(),
	}
}

func (s *Store) SignIn(ctx context.Context, creds Credentials) (Session, error) {
	tok := s.status.Begin("signin")
	sess, err := s.client.SignIn(ctx, creds)
	s.status.Done("signin", tok, err)
	if err != nil {
		return Session{}, err
	}
	s.put(sess.Profile)
	return sess, nil
}

func (s *Store) SignUp(ctx context.Context, reg Registration) (Session, error) {
	tok := s.status.Begin("signup")
	sess, err := s.client.SignUp(ctx, reg)
	s.status.Done("signup", tok, err)
	if err != nil {
		return Session{}, err
	}
	s.put(sess.Profile)
	return sess, nil
}

func (s *Store) Get(ctx context.Context, userID string) (Profile, error) {
	s.mu.RLock()
	p, ok := s.profiles[userID]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	key := "fetch:" + userID
	tok := s.status.Begin(key)
	fetched, err := s.client.Fetch(ctx, userID)
	fresh := s.status.Done(key, tok, err)
	if err != nil {
		return Profile{}, err
	}
	if fresh {
		s.put(fetched)
	}
	return fetched, nil
}

func (s *Store) Update(ctx context.Context, userID string, p Profile) (Profile, error) {
	key := "update:" + userID
	tok := s.status.Begin(key)
	updated, err := s.client.Update(ctx, userID, p)
	s.status.Done(key, tok, err)
	if err != nil {
		return Profile{}, err
	}
	s.put(updated)
	return updated, nil
}

// Forget drops the cached profile, used on sign-out.
func (s *Store) Forget(userID string) {
	s.mu.Lock()
	delete(s.profiles, userID)
	s.mu.Unlock()
}

func (s *Store) put(p Profile) {
	if p.ID == "" {
		return
	}
	s.mu.Lock()
	s.profiles[p.ID] = p
	s.mu.Unlock()
}

func (s *Store) Loading(key string) bool { return s.status.Loading(key) }
func (s *Store) Err(key string) string   { return s.status.Err(key) }
