package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Filter describes a filtered catalog listing. Exactly one of the filter
// fields is expected to be set; Kind/Value feed the cache bucket key.
type Filter struct {
	Category   string
	Brand      string
	Gender     string
	Tag        string
	NewRelease bool
	Page       int
}

// Kind returns the filter dimension used in bucket keys.
func (f Filter) Kind() (kind, value string) {
	switch {
	case f.Category != "":
		return "category", f.Category
	case f.Brand != "":
		return "brand", f.Brand
	case f.Gender != "":
		return "gender", f.Gender
	case f.Tag != "":
		return "tag", f.Tag
	case f.NewRelease:
		return "new", "true"
	}
	return "all", ""
}

// Client is the catalog service adapter the store fetches through. The REST
// implementation lives below; tests plug in an in-memory fake.
type Client interface {
	FetchByID(ctx context.Context, id string) (Product, error)
	FetchPage(ctx context.Context, page int) ([]Product, error)
	FetchFiltered(ctx context.Context, f Filter) ([]Product, error)
	FetchByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
}

const pageSize = 12

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) FetchByID(ctx context.Context, id string) (Product, error) {
	var p Product
	err := c.api.GetJSON(ctx, "/products/"+url.PathEscape(id), &p)
	if upstream.NotFound(err) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *restClient) FetchPage(ctx context.Context, page int) ([]Product, error) {
	var out struct {
		Items []Product `json:"items"`
	}
	path := fmt.Sprintf("/products?page=%d&limit=%d", page, pageSize)
	if err := c.api.GetJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *restClient) FetchFiltered(ctx context.Context, f Filter) ([]Product, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.Gender != "" {
		q.Set("gender", f.Gender)
	}
	if f.Tag != "" {
		q.Set("tag", f.Tag)
	}
	if f.NewRelease {
		q.Set("newRelease", "true")
	}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("limit", strconv.Itoa(pageSize))

	var out struct {
		Items []Product `json:"items"`
	}
	if err := c.api.GetJSON(ctx, "/products/filter?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *restClient) FetchByIDs(ctx context.Context, ids []string) ([]Product, error) {
	var out struct {
		Items []Product `json:"items"`
	}
	body := map[string][]string{"ids": ids}
	if err := c.api.PostJSON(ctx, "/products/by-ids", body, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *restClient) Create(ctx context.Context, p Product) (Product, error) {
	var created Product
	if err := c.api.PostJSON(ctx, "/products", p, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

func (c *restClient) Update(ctx context.Context, p Product) (Product, error) {
	var updated Product
	err := c.api.PutJSON(ctx, "/products/"+url.PathEscape(p.ID), p, &updated)
	if upstream.NotFound(err) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (c *restClient) Delete(ctx context.Context, id string) error {
	err := c.api.Delete(ctx, "/products/"+url.PathEscape(id))
	if upstream.NotFound(err) {
		return ErrNotFound
	}
	return err
}
