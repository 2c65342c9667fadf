package wishlist

import (
	"context"
	"errors"
	"net/url"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

var (
	ErrAlreadyInWishlist = errors.New("product already in wishlist")
	ErrNotInWishlist     = errors.New("product not in wishlist")
)

// Client is the wishlist service adapter. The service stores bare product
// id lists per user; the UI joins them against the product cache itself.
type Client interface {
	Fetch(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) Fetch(ctx context.Context, userID string) ([]string, error) {
	var out []string
	err := c.api.GetJSON(ctx, "/wishlist", &out, upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) Add(ctx context.Context, userID, productID string) error {
	body := map[string]string{"productId": productID}
	err := c.api.PostJSON(ctx, "/wishlist", body, nil, upstream.WithUser(userID))
	var ue *upstream.Error
	if errors.As(err, &ue) && ue.Status == 409 {
		return ErrAlreadyInWishlist
	}
	return err
}

func (c *restClient) Remove(ctx context.Context, userID, productID string) error {
	err := c.api.Delete(ctx, "/wishlist/"+url.PathEscape(productID), upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return ErrNotInWishlist
	}
	return err
}
