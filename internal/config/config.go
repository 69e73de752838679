package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

const (
	KVBackendMemory = "memory"
	KVBackendFile   = "file"
	KVBackendRedis  = "redis"
)

// Config holds the runtime settings of the storefront service.
type Config struct {
	HTTPAddr string
	LogLevel log.Level

	Catalog CatalogConfig
	Remote  RemoteConfig
	KV      KVConfig
	Redis   RedisConfig
	Cart    CartConfig

	CheckoutURL string
	// AllowedOrigins lists browser origins allowed to call the API.
	AllowedOrigins []string
}

type CatalogConfig struct {
	// Path of the static catalog document used when the remote source has no data.
	Path     string
	Currency currency.Unit
	// DefaultDiscount is shown for products without their own discount.
	DefaultDiscount decimal.Decimal
}

// RemoteConfig points at the hosted products database; an empty URL
// disables the remote catalog and consultation bookings.
type RemoteConfig struct {
	DatabaseURL string
}

func (c RemoteConfig) Configured() bool {
	return c.DatabaseURL != ""
}

type KVConfig struct {
	Backend string
	Path    string
}

type CartConfig struct {
	// CacheSize bounds the carts kept in memory; evicted carts reload from the store.
	CacheSize int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		CheckoutURL: getEnv("CHECKOUT_URL", "/checkout.html"),
		Remote: RemoteConfig{
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		KV: KVConfig{
			Backend: strings.ToLower(getEnv("KV_BACKEND", KVBackendFile)),
			Path:    getEnv("KV_PATH", "var/storage.json"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", "data/products.json"),
		},
	}

	var err error

	if cfg.LogLevel, err = log.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if cfg.Redis.DB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	if cfg.Cart.CacheSize, err = strconv.Atoi(getEnv("CART_CACHE_SIZE", "10000")); err != nil {
		return nil, fmt.Errorf("invalid CART_CACHE_SIZE: %w", err)
	}
	if cfg.Cart.CacheSize <= 0 {
		return nil, fmt.Errorf("invalid CART_CACHE_SIZE: %d is not positive", cfg.Cart.CacheSize)
	}

	if cfg.Catalog.Currency, err = currency.ParseISO(getEnv("CURRENCY", "USD")); err != nil {
		return nil, fmt.Errorf("invalid CURRENCY: %w", err)
	}

	if cfg.Catalog.DefaultDiscount, err = decimal.NewFromString(getEnv("DEFAULT_DISCOUNT_PCT", "50")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_DISCOUNT_PCT: %w", err)
	}
	if cfg.Catalog.DefaultDiscount.IsNegative() || cfg.Catalog.DefaultDiscount.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("invalid DEFAULT_DISCOUNT_PCT: %s is outside [0, 100)", cfg.Catalog.DefaultDiscount)
	}

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSuffix(origin, "/"))
		}
	}

	switch cfg.KV.Backend {
	case KVBackendMemory, KVBackendFile, KVBackendRedis:
	default:
		return nil, fmt.Errorf("invalid KV_BACKEND: %q, want one of memory, file, redis", cfg.KV.Backend)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
