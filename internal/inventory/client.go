package inventory

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

var ErrNotFound = errors.New("inventory record not found")

// Client is the inventory service adapter. All calls are admin-side; the
// storefront itself reads stock through the product payloads.
type Client interface {
	FetchAll(ctx context.Context, page int) ([]Item, error)
	FetchByProduct(ctx context.Context, productID string) ([]Item, error)
	AddStock(ctx context.Context, adj Adjustment) (Item, error)
	ReduceStock(ctx context.Context, adj Adjustment) (Item, error)
	UpdateStock(ctx context.Context, adj Adjustment) (Item, error)
}

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) FetchAll(ctx context.Context, page int) ([]Item, error) {
	var out []Item
	path := fmt.Sprintf("/inventory?page=%d", page)
	if err := c.api.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) FetchByProduct(ctx context.Context, productID string) ([]Item, error) {
	var out []Item
	path := "/inventory/product/" + url.PathEscape(productID)
	err := c.api.GetJSON(ctx, path, &out)
	if upstream.NotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) AddStock(ctx context.Context, adj Adjustment) (Item, error) {
	return c.post(ctx, "/inventory/add", adj)
}

func (c *restClient) ReduceStock(ctx context.Context, adj Adjustment) (Item, error) {
	return c.post(ctx, "/inventory/reduce", adj)
}

func (c *restClient) UpdateStock(ctx context.Context, adj Adjustment) (Item, error) {
	var out Item
	err := c.api.PutJSON(ctx, "/inventory", adj, &out)
	if upstream.NotFound(err) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return out, nil
}

func (c *restClient) post(ctx context.Context, path string, adj Adjustment) (Item, error) {
	var out Item
	err := c.api.PostJSON(ctx, path, adj, &out)
	if upstream.NotFound(err) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	return out, nil
}
