package rating

import (
	"context"
	"testing"
)

type fakeRatingClient struct {
	byProduct     map[string][]Rating
	byUser        map[string][]Rating
	averages      map[string]Average
	productCalls  int
	userCalls     int
	averageCalls  int
	addedRatings  []Rating
	removedIDs    []string
	updatedRating Rating
}

func (f *fakeRatingClient) FetchByProduct(ctx context.Context, productID string) ([]Rating, error) {
	f.productCalls++
	return f.byProduct[productID], nil
}

func (f *fakeRatingClient) FetchByUser(ctx context.Context, userID string) ([]Rating, error) {
	f.userCalls++
	return f.byUser[userID], nil
}

func (f *fakeRatingClient) FetchAverage(ctx context.Context, productID string) (Average, error) {
	f.averageCalls++
	return f.averages[productID], nil
}

func (f *fakeRatingClient) Add(ctx context.Context, userID string, r Rating) (Rating, error) {
	r.ID = "new"
	r.UserID = userID
	f.addedRatings = append(f.addedRatings, r)
	return r, nil
}

func (f *fakeRatingClient) Update(ctx context.Context, userID string, r Rating) (Rating, error) {
	f.updatedRating = r
	return r, nil
}

func (f *fakeRatingClient) Remove(ctx context.Context, userID, ratingID string) error {
	f.removedIDs = append(f.removedIDs, ratingID)
	return nil
}

func seededClient() *fakeRatingClient {
	r1 := Rating{ID: "r1", UserID: "u1", ProductID: "p1", Value: 4, Comment: "solid"}
	r2 := Rating{ID: "r2", UserID: "u2", ProductID: "p1", Value: 5}
	return &fakeRatingClient{
		byProduct: map[string][]Rating{"p1": {r1, r2}},
		byUser:    map[string][]Rating{"u1": {r1}},
		averages:  map[string]Average{"p1": {ProductID: "p1", Average: 4.5, Count: 2}},
	}
}

func TestByProductCachesBucket(t *testing.T) {
	client := seededClient()
	s := NewStore(client)
	ctx := context.Background()

	first, err := s.ByProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := s.ByProduct(ctx, "p1")
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if client.productCalls != 1 {
		t.Errorf("expected 1 upstream call, got %d", client.productCalls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("expected 2 ratings each read, got %d and %d", len(first), len(second))
	}
}

func TestAverageCached(t *testing.T) {
	client := seededClient()
	s := NewStore(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		avg, err := s.AverageFor(ctx, "p1")
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if avg.Average != 4.5 || avg.Count != 2 {
			t.Errorf("unexpected aggregate: %+v", avg)
		}
	}
	if client.averageCalls != 1 {
		t.Errorf("expected 1 upstream call, got %d", client.averageCalls)
	}
}

func TestExistingForProduct(t *testing.T) {
	s := NewStore(seededClient())
	ctx := context.Background()

	r, found, err := s.ExistingForProduct(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !found || r.ID != "r1" {
		t.Errorf("expected r1, got found=%v r=%+v", found, r)
	}

	_, found, err = s.ExistingForProduct(ctx, "u1", "p9")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found {
		t.Error("u1 has no rating for p9")
	}
}

func TestAddInvalidatesProductUserAndAverage(t *testing.T) {
	client := seededClient()
	s := NewStore(client)
	ctx := context.Background()

	if _, err := s.ByProduct(ctx, "p1"); err != nil {
		t.Fatalf("seed product bucket: %v", err)
	}
	if _, err := s.ByUser(ctx, "u1"); err != nil {
		t.Fatalf("seed user bucket: %v", err)
	}
	if _, err := s.AverageFor(ctx, "p1"); err != nil {
		t.Fatalf("seed average: %v", err)
	}

	if _, err := s.Add(ctx, "u1", Rating{ProductID: "p1", Value: 3}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := s.ByProduct(ctx, "p1"); err != nil {
		t.Fatalf("reread product: %v", err)
	}
	if _, err := s.ByUser(ctx, "u1"); err != nil {
		t.Fatalf("reread user: %v", err)
	}
	if _, err := s.AverageFor(ctx, "p1"); err != nil {
		t.Fatalf("reread average: %v", err)
	}
	if client.productCalls != 2 || client.userCalls != 2 || client.averageCalls != 2 {
		t.Errorf("expected every bucket refetched after add, got product=%d user=%d average=%d",
			client.productCalls, client.userCalls, client.averageCalls)
	}
}

func TestValueValidatedBeforeDispatch(t *testing.T) {
	client := seededClient()
	s := NewStore(client)
	ctx := context.Background()

	for _, v := range []int{0, 6, -1} {
		if _, err := s.Add(ctx, "u1", Rating{ProductID: "p1", Value: v}); err != ErrInvalidValue {
			t.Errorf("value %d: expected ErrInvalidValue, got %v", v, err)
		}
		if _, err := s.Update(ctx, "u1", Rating{ID: "r1", ProductID: "p1", Value: v}); err != ErrInvalidValue {
			t.Errorf("value %d: expected ErrInvalidValue on update, got %v", v, err)
		}
	}
	if len(client.addedRatings) != 0 {
		t.Errorf("invalid values must never reach the service, got %d calls", len(client.addedRatings))
	}
}

func TestRemoveInvalidates(t *testing.T) {
	client := seededClient()
	s := NewStore(client)
	ctx := context.Background()

	if _, err := s.ByProduct(ctx, "p1"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Remove(ctx, "u1", "r1", "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := s.ByProduct(ctx, "p1"); err != nil {
		t.Fatalf("reread: %v", err)
	}
	if client.productCalls != 2 {
		t.Errorf("expected refetch after remove, got %d calls", client.productCalls)
	}
	if len(client.removedIDs) != 1 || client.removedIDs[0] != "r1" {
		t.Errorf("remove not forwarded: %v", client.removedIDs)
	}
}
