package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/wichananm65/storefront-gateway/internal/activity"
	"github.com/wichananm65/storefront-gateway/internal/cart"
	"github.com/wichananm65/storefront-gateway/internal/catalog"
	"github.com/wichananm65/storefront-gateway/internal/config"
	"github.com/wichananm65/storefront-gateway/internal/inventory"
	"github.com/wichananm65/storefront-gateway/internal/profile"
	"github.com/wichananm65/storefront-gateway/internal/rating"
	"github.com/wichananm65/storefront-gateway/internal/upstream"
	"github.com/wichananm65/storefront-gateway/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(checkMiddleware)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	catalogStore := catalog.NewStore(catalog.NewClient(upstream.New(cfg.CatalogURL)))
	cartStore := cart.NewStore(cart.NewClient(upstream.New(cfg.CartURL)), cart.NewRedisSnapshotStore(rdb))
	ratingStore := rating.NewStore(rating.NewClient(upstream.New(cfg.RatingURL)))
	inventoryStore := inventory.NewStore(inventory.NewClient(upstream.New(cfg.InventoryURL)))
	wishlistStore := wishlist.NewStore(wishlist.NewClient(upstream.New(cfg.WishlistURL)))
	profileStore := profile.NewStore(profile.NewClient(upstream.New(cfg.UserURL)))
	activityStore := activity.NewStore(activity.NewClient(upstream.New(cfg.ActivityURL)))

	catalogHandler := catalog.NewHandler(catalogStore)
	cartHandler := cart.NewHandler(cartStore, catalogStore)
	ratingHandler := rating.NewHandler(ratingStore)
	inventoryHandler := inventory.NewHandler(inventoryStore)
	wishlistHandler := wishlist.NewHandler(wishlistStore)
	profileHandler := profile.NewHandler(profileStore)
	activityHandler := activity.NewHandler(activityStore)

	catalogHandler.RegisterPublicRoutes(app)
	ratingHandler.RegisterPublicRoutes(app)
	profileHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	catalogHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	ratingHandler.RegisterProtectedRoutes(app)
	inventoryHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	profileHandler.RegisterProtectedRoutes(app)
	activityHandler.RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
