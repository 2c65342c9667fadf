package catalog

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func makeApp(fc *fakeClient) *fiber.App {
	app := fiber.New()
	h := NewHandler(NewStore(fc))
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestGetDetail_VariantPreselectScenario(t *testing.T) {
	fc := newFakeClient()
	fc.products["P"] = twoVariantProduct()
	app := makeApp(fc)

	// loading /products/P/P-RED: the UI passes the slug as ?sku=
	req := httptest.NewRequest("GET", "/api/v1/product/P/detail?sku=p-red", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body struct {
		Selection Selection `json:"selection"`
	}
	raw, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Selection.Color != "Red" {
		t.Fatalf("expected Red preselected, got %s", body.Selection.Color)
	}
	if !body.Selection.Price.Equal(decimal.RequireFromString("90")) {
		t.Fatalf("expected price 90.00, got %s", body.Selection.Price)
	}
	if !body.Selection.HasDiscount {
		t.Fatalf("expected strikethrough for discounted variant")
	}

	// clicking the Blue swatch re-requests the detail with the new sku
	req2 := httptest.NewRequest("GET", "/api/v1/product/P/detail?sku=p-blue", nil)
	res2, _ := app.Test(req2)
	raw2, _ := io.ReadAll(res2.Body)
	if err := json.Unmarshal(raw2, &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !body.Selection.Price.Equal(decimal.RequireFromString("120")) || body.Selection.HasDiscount {
		t.Fatalf("expected 120.00 without strikethrough, got %+v", body.Selection)
	}
	if !strings.HasSuffix(body.Selection.Route, "p-blue") {
		t.Fatalf("route must end in the blue slug, got %s", body.Selection.Route)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	app := makeApp(newFakeClient())

	req := httptest.NewRequest("GET", "/api/v1/product/nope", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCreateProduct_RejectsStockMismatch(t *testing.T) {
	app := makeApp(newFakeClient())

	payload := `{
		"productName": "Tee",
		"variants": [
			{"color":"Red","sku":"T-RED","price":"10","quantity":5,
			 "sizes":[{"size":"M","quantity":2}]}
		]
	}`
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for aggregate/size mismatch, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "stock does not match") {
		t.Fatalf("expected invariant message, got %s", string(b))
	}
}

func TestCreateProduct_OK(t *testing.T) {
	fc := newFakeClient()
	app := makeApp(fc)

	payload := `{
		"productName": "Tee",
		"variants": [
			{"color":"Red","sku":"T-RED","price":"10","quantity":5,
			 "sizes":[{"size":"M","quantity":3},{"size":"L","quantity":2}]}
		]
	}`
	req := httptest.NewRequest("POST", "/api/v1/admin/products", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, string(b))
	}
	if len(fc.products) != 1 {
		t.Fatalf("expected product written upstream")
	}
}
