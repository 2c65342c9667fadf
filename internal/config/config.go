package config

import "os"

// Config holds the gateway's listen address, the base URLs of the backend
// services it fronts, and the shared secrets. Values come from the
// environment; godotenv loads a .env file in development.
type Config struct {
	Addr string

	CatalogURL   string
	CartURL      string
	RatingURL    string
	InventoryURL string
	WishlistURL  string
	UserURL      string
	ActivityURL  string

	RedisAddr string
	JWTSecret string
}

func Load() Config {
	return Config{
		Addr:         getenv("STOREFRONT_ADDR", ":8080"),
		CatalogURL:   getenv("CATALOG_SERVICE_URL", "http://localhost:9001"),
		CartURL:      getenv("CART_SERVICE_URL", "http://localhost:9002"),
		RatingURL:    getenv("RATING_SERVICE_URL", "http://localhost:9003"),
		InventoryURL: getenv("INVENTORY_SERVICE_URL", "http://localhost:9004"),
		WishlistURL:  getenv("WISHLIST_SERVICE_URL", "http://localhost:9005"),
		UserURL:      getenv("USER_SERVICE_URL", "http://localhost:9006"),
		ActivityURL:  getenv("ACTIVITY_SERVICE_URL", "http://localhost:9007"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
