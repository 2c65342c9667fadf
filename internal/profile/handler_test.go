package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type fakeProfileClient struct {
	profiles   map[string]Profile
	fetchCalls int
}

func (f *fakeProfileClient) SignIn(ctx context.Context, creds Credentials) (Session, error) {
	if creds.Email == "jane@example.com" && creds.Password == "secret" {
		return Session{Token: "tok-1", Profile: f.profiles["u1"]}, nil
	}
	return Session{}, ErrInvalidCredentials
}

func (f *fakeProfileClient) SignUp(ctx context.Context, reg Registration) (Session, error) {
	if reg.Email == "jane@example.com" {
		return Session{}, ErrEmailTaken
	}
	p := Profile{ID: "u2", Email: reg.Email, FirstName: reg.FirstName, LastName: reg.LastName}
	return Session{Token: "tok-2", Profile: p}, nil
}

func (f *fakeProfileClient) Fetch(ctx context.Context, userID string) (Profile, error) {
	f.fetchCalls++
	p, ok := f.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeProfileClient) Update(ctx context.Context, userID string, p Profile) (Profile, error) {
	p.ID = userID
	f.profiles[userID] = p
	return p, nil
}

func seededProfiles() *fakeProfileClient {
	return &fakeProfileClient{profiles: map[string]Profile{
		"u1": {ID: "u1", Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"},
	}}
}

func appWithClaims(h *Handler, userID string) *fiber.App {
	app := fiber.New()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", tok)
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestSignInPassesTokenThrough(t *testing.T) {
	h := NewHandler(NewStore(seededProfiles()))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	body := strings.NewReader(`{"email":"jane@example.com","password":"secret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.Token != "tok-1" {
		t.Errorf("backend token must pass through untouched, got %q", sess.Token)
	}
	if sess.Profile.ID != "u1" {
		t.Errorf("expected u1 profile, got %+v", sess.Profile)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	h := NewHandler(NewStore(seededProfiles()))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	body := strings.NewReader(`{"email":"jane@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSignUpConflict(t *testing.T) {
	h := NewHandler(NewStore(seededProfiles()))
	app := fiber.New()
	h.RegisterPublicRoutes(app)

	body := strings.NewReader(`{"email":"jane@example.com","password":"x","firstName":"Jane","lastName":"Doe"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetProfileCachedAfterSignIn(t *testing.T) {
	client := seededProfiles()
	store := NewStore(client)
	if _, err := store.SignIn(context.Background(), Credentials{Email: "jane@example.com", Password: "secret"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	app := appWithClaims(NewHandler(store), "u1")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if client.fetchCalls != 0 {
		t.Errorf("sign-in already cached the profile, got %d fetches", client.fetchCalls)
	}
}

func TestGetUserIDFromCtxRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/probe", func(c *fiber.Ctx) error {
		if _, err := GetUserIDFromCtx(c); err == nil {
			t.Error("expected an error without a token in locals")
		}
		return c.SendStatus(http.StatusOK)
	})
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/probe", nil)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}
