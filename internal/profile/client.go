package profile

import (
	"context"
	"errors"

	"github.com/wichananm65/storefront-gateway/internal/upstream"
)

var (
	ErrNotFound           = errors.New("profile not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Client talks to the backend user service. Authentication lives there;
// the gateway forwards credentials and hands the issued token to the UI.
type Client interface {
	SignIn(ctx context.Context, creds Credentials) (Session, error)
	SignUp(ctx context.Context, reg Registration) (Session, error)
	Fetch(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, userID string, p Profile) (Profile, error)
}

type restClient struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) Client {
	return &restClient{api: api}
}

func (c *restClient) SignIn(ctx context.Context, creds Credentials) (Session, error) {
	var out Session
	err := c.api.PostJSON(ctx, "/auth/login", creds, &out)
	var ue *upstream.Error
	if errors.As(err, &ue) && (ue.Status == 401 || ue.Status == 404) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	return out, nil
}

func (c *restClient) SignUp(ctx context.Context, reg Registration) (Session, error) {
	var out Session
	err := c.api.PostJSON(ctx, "/auth/register", reg, &out)
	var ue *upstream.Error
	if errors.As(err, &ue) && ue.Status == 409 {
		return Session{}, ErrEmailTaken
	}
	if err != nil {
		return Session{}, err
	}
	return out, nil
}

func (c *restClient) Fetch(ctx context.Context, userID string) (Profile, error) {
	var out Profile
	err := c.api.GetJSON(ctx, "/users/me", &out, upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return out, nil
}

func (c *restClient) Update(ctx context.Context, userID string, p Profile) (Profile, error) {
	var out Profile
	err := c.api.PutJSON(ctx, "/users/me", p, &out, upstream.WithUser(userID))
	if upstream.NotFound(err) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return out, nil
}
