package rating

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/storefront-gateway/internal/profile"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/product/:id/ratings", h.listByProduct)
	app.Get("/api/v1/product/:id/ratings/average", h.average)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/my/ratings", h.listMine)
	app.Get("/api/v1/product/:id/my-rating", h.myRatingForProduct)
	app.Post("/api/v1/product/:id/ratings", h.add)
	app.Put("/api/v1/rating/:id", h.update)
	app.Delete("/api/v1/rating/:id", h.remove)
}

func (h *Handler) listByProduct(c *fiber.Ctx) error {
	ratings, err := h.store.ByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ratings)
}

func (h *Handler) average(c *fiber.Ctx) error {
	avg, err := h.store.AverageFor(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(avg)
}

func (h *Handler) listMine(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	ratings, err := h.store.ByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ratings)
}

func (h *Handler) myRatingForProduct(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	r, found, err := h.store.ExistingForProduct(c.Context(), userID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "no rating yet"})
	}
	return c.JSON(r)
}

func (h *Handler) add(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Rating)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ProductID = c.Params("id")

	created, err := h.store.Add(c.Context(), userID, *payload)
	if err != nil {
		if err == ErrInvalidValue {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Rating)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ID = c.Params("id")

	updated, err := h.store.Update(c.Context(), userID, *payload)
	if err != nil {
		switch err {
		case ErrInvalidValue:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "rating not found"})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	userID, err := profile.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	productID := c.Query("productId")
	if err := h.store.Remove(c.Context(), userID, c.Params("id"), productID); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "rating not found"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "rating removed"})
}
