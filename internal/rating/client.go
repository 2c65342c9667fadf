package rating

import (
	"context"
	"errors"
	"net/url"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

var (
	ErrNotFound     = errors.New("rating not found")
	ErrInvalidValue = errors.New("rating value must be between 1 and 5")
)

// Client is the rating service adapter.
type Client interface {
	FetchByProduct(ctx context.Context, productID string) ([]Rating, error)
	FetchByUser(ctx context.Context, userID string) ([]Rating, error)
	FetchAverage(ctx context.Context, productID string) (Average, error)
	Add(ctx context.Context, userID string, r Rating) (Rating, error)
	Update(ctx context.Context, userID string, r Rating) (Rating, error)
	Remove(ctx context.Context, userID, ratingID string) error
}

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) FetchByProduct(ctx context.Context, productID string) ([]Rating, error) {
	var out []Rating
	path := "/products/" + url.PathEscape(productID) + "/ratings"
	if err := c.api.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) FetchByUser(ctx context.Context, userID string) ([]Rating, error) {
	var out []Rating
	if err := c.api.GetJSON(ctx, "/ratings/mine", &out, upstream.WithUser(userID)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) FetchAverage(ctx context.Context, productID string) (Average, error) {
	var out Average
	path := "/products/" + url.PathEscape(productID) + "/ratings/average"
	err := c.api.GetJSON(ctx, path, &out)
	if upstream.NotFound(err) {
		// a product nobody rated yet has a zero aggregate
		return Average{ProductID: productID}, nil
	}
	if err != nil {
		return Average{}, err
	}
	return out, nil
}

func (c *restClient) Add(ctx context.Context, userID string, r Rating) (Rating, error) {
	var out Rating
	path := "/products/" + url.PathEscape(r.ProductID) + "/ratings"
	if err := c.api.PostJSON(ctx, path, r, &out, upstream.WithUser(userID)); err != nil {
		return Rating{}, err
	}
	return out, nil
}

func (c *restClient) Update(ctx context.Context, userID string, r Rating) (Rating, error) {
	var out Rating
	path := "/ratings/" + url.PathEscape(r.ID)
	err := c.api.PutJSON(ctx, path, r, &out, upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return Rating{}, ErrNotFound
	}
	if err != nil {
		return Rating{}, err
	}
	return out, nil
}

func (c *restClient) Remove(ctx context.Context, userID, ratingID string) error {
	err := c.api.Delete(ctx, "/ratings/"+url.PathEscape(ratingID), upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return ErrNotFound
	}
	return err
}
