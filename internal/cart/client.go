package cart

import (
	"context"
	"errors"
	"net/url"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

var ErrNotFound = errors.New("cart not found")

// Client is the cart service adapter. The backend keys carts by the
// X-User-ID header, so every call carries the acting user.
type Client interface {
	Fetch(ctx context.Context, userID string) (Cart, error)
	AddItem(ctx context.Context, userID string, item Item) (Cart, error)
	UpdateQuantity(ctx context.Context, userID string, item Item) (Cart, error)
	RemoveItem(ctx context.Context, userID string, item Item) (Cart, error)
}

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) Fetch(ctx context.Context, userID string) (Cart, error) {
	var out Cart
	err := c.api.GetJSON(ctx, "/cart", &out, upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return Cart{}, ErrNotFound
	}
	if err != nil {
		return Cart{}, err
	}
	return out, nil
}

func (c *restClient) AddItem(ctx context.Context, userID string, item Item) (Cart, error) {
	var out Cart
	if err := c.api.PostJSON(ctx, "/cart/items", item, &out, upstream.WithUser(userID)); err != nil {
		return Cart{}, err
	}
	return out, nil
}

func (c *restClient) UpdateQuantity(ctx context.Context, userID string, item Item) (Cart, error) {
	var out Cart
	path := "/cart/items/" + url.PathEscape(item.VariantSKU)
	if err := c.api.PutJSON(ctx, path, item, &out, upstream.WithUser(userID)); err != nil {
		return Cart{}, err
	}
	return out, nil
}

func (c *restClient) RemoveItem(ctx context.Context, userID string, item Item) (Cart, error) {
	var out Cart
	q := url.Values{}
	q.Set("size", item.Size)
	path := "/cart/items/" + url.PathEscape(item.VariantSKU) + "/remove?" + q.Encode()
	if err := c.api.PostJSON(ctx, path, nil, &out, upstream.WithUser(userID)); err != nil {
		return Cart{}, err
	}
	return out, nil
}
