package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront-gateway/internal/profile"
)

// Handler exposes the cart container. Reads come back enriched against the
// product cache; mutations forward to the cart service and return the
// updated cart, also enriched.
type Handler struct {
	store    *Store
	products ProductLookup
}

func NewHandler(store *Store, products ProductLookup) *Handler {
	return &Handler{store: store, products: products}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items", h.updateQuantity)
	app.Delete("/api/v1/cart/items", h.removeItem)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cart, err := h.store.Get(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(Enrich(c.Context(), cart, h.products))
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	return h.mutate(c, h.store.AddItem)
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	return h.mutate(c, h.store.UpdateQuantity)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	return h.mutate(c, h.store.RemoveItem)
}

func (h *Handler) mutate(c *fiber.Ctx, op mutateFn) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Item)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ProductID == "" || payload.VariantSKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId and variantSku are required"})
	}

	cart, err := op(c.Context(), userID, *payload)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(Enrich(c.Context(), cart, h.products))
}
