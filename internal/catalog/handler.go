package catalog

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog container to the web UI. Reads are served
// cache-first by the store; admin mutations write through and invalidate.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/filter", h.filterProducts)
	app.Get("/api/v1/product/:id", h.getProduct)
	app.Get("/api/v1/product/:id/detail", h.getDetail)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/products", h.createProduct)
	app.Put("/api/v1/admin/product/:id", h.updateProduct)
	app.Delete("/api/v1/admin/product/:id", h.deleteProduct)
	app.Post("/api/v1/admin/cache/clear", h.clearCache)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	items, err := h.store.Page(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"page": page, "items": items})
}

func (h *Handler) filterProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	f := Filter{
		Category:   c.Query("category"),
		Brand:      c.Query("brand"),
		Gender:     c.Query("gender"),
		Tag:        c.Query("tag"),
		NewRelease: c.Query("newRelease") == "true",
		Page:       page,
	}

	items, err := h.store.Filtered(c.Context(), f)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"page": page, "items": items})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.store.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(p)
}

// getDetail returns the product together with its detail-view selection.
// `?sku=` preselects a variant (the UI passes the slug from the URL);
// without it the first variant is chosen.
func (h *Handler) getDetail(c *fiber.Ctx) error {
	p, err := h.store.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}

	sel, err := Select(p, c.Query("sku"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"product": p, "selection": sel})
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Name == "" || len(payload.Variants) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and at least one variant are required"})
	}
	for _, v := range payload.Variants {
		if !ValidateVariantStock(v) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "variant " + v.SKU + " stock does not match its size quantities"})
		}
	}

	created, err := h.store.Create(c.Context(), *payload)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ID = c.Params("id")
	for _, v := range payload.Variants {
		if !ValidateVariantStock(v) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "variant " + v.SKU + " stock does not match its size quantities"})
		}
	}

	updated, err := h.store.Update(c.Context(), *payload)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.store.Delete(c.Context(), c.Params("id")); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) clearCache(c *fiber.Ctx) error {
	h.store.ClearAll()
	return c.JSON(fiber.Map{"message": "catalog cache cleared"})
}
