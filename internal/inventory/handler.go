package inventory

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the stock admin screens. Everything here is protected;
// registration happens after the jwt middleware is installed.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/inventory", h.list)
	app.Get("/api/v1/admin/inventory/product/:id", h.byProduct)
	app.Post("/api/v1/admin/inventory/add", h.addStock)
	app.Post("/api/v1/admin/inventory/reduce", h.reduceStock)
	app.Put("/api/v1/admin/inventory", h.updateStock)
}

func (h *Handler) list(c *fiber.Ctx) error {
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

func (h *Handler) byProduct(c *fiber.Ctx) error {
	items, err := h.store.ByProduct(c.Context(), c.Params("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no inventory for product"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) addStock(c *fiber.Ctx) error {
	return h.mutate(c, h.store.AddStock)
}

func (h *Handler) reduceStock(c *fiber.Ctx) error {
	return h.mutate(c, h.store.ReduceStock)
}

func (h *Handler) updateStock(c *fiber.Ctx) error {
	return h.mutate(c, h.store.UpdateStock)
}

func (h *Handler) mutate(c *fiber.Ctx, op func(ctx context.Context, adj Adjustment) (Item, error)) error {
	payload := new(Adjustment)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" || payload.VariantSKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId and variantSku are required"})
	}
	if payload.Amount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "amount must not be negative"})
	}

	item, err := op(c.Context(), *payload)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "inventory record not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(item)
}
