package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Error is a failure reported by a backend service. Message carries the
// server's own message field when one was present so handlers can forward it
// verbatim to the UI.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream: %d %s", e.Status, e.Message)
}

// NotFound reports whether err is an upstream 404.
func NotFound(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Status == http.StatusNotFound
}

// Client issues JSON requests against one backend service base URL.
// Every entity service (catalog, cart, rating, inventory, user) gets its own
// Client so timeouts and headers stay per-service.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

// Header keys the backend contract expects.
const (
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

type reqOpts struct {
	userID string
}

type Option func(*reqOpts)

// WithUser attaches the acting user's id as the X-User-ID header
// (cart and wishlist endpoints are keyed by it).
func WithUser(id string) Option {
	return func(o *reqOpts) { o.userID = id }
}

func (c *Client) GetJSON(ctx context.Context, path string, out any, opts ...Option) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) PutJSON(ctx context.Context, path string, body, out any, opts ...Option) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...Option) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...Option) error {
	var o reqOpts
	for _, fn := range opts {
		fn(&o)
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if o.userID != "" {
		req.Header.Set(HeaderUserID, o.userID)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError pulls the optional {"message": ...} body out of an error
// response. Anything unparseable falls back to the HTTP status text.
func decodeError(res *http.Response) error {
	ue := &Error{Status: res.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err == nil && json.Unmarshal(raw, &body) == nil && body.Message != "" {
		ue.Message = body.Message
	} else {
		ue.Message = http.StatusText(res.StatusCode)
	}
	return ue
}
