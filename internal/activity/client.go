package activity

import (
	"context"
	"fmt"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

// Client is the activity service adapter.
type Client interface {
	FetchByUser(ctx context.Context, userID string, page int) ([]Entry, error)
	Append(ctx context.Context, userID string, e Entry) (Entry, error)
}

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) FetchByUser(ctx context.Context, userID string, page int) ([]Entry, error) {
	var out []Entry
	path := fmt.Sprintf("/activity?page=%d", page)
	err := c.api.GetJSON(ctx, path, &out, upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *restClient) Append(ctx context.Context, userID string, e Entry) (Entry, error) {
	var out Entry
	if err := c.api.PostJSON(ctx, "/activity", e, &out, upstream.WithUser(userID)); err != nil {
		return Entry{}, err
	}
	return out, nil
}
