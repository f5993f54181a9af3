package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures all runtime configuration. Values are read once at
// startup; nothing re-reads the environment afterwards.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// MongoURI is optional; when empty, webhook events are not persisted.
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"catalog_connect"`

	// RedisURL is optional; when empty, the in-memory event tracker is used
	// and dedup history does not survive a restart.
	RedisURL string `env:"REDIS_URL"`

	DedupWindow     time.Duration `env:"DEDUP_WINDOW" envDefault:"24h"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	Shopify     PlatformConfig `envPrefix:"SHOPIFY_"`
	WooCommerce PlatformConfig `envPrefix:"WOOCOMMERCE_"`
}

// PlatformConfig holds one platform's credential record. The layer serves a
// single client per platform; ClientID names the client owning the record.
type PlatformConfig struct {
	ClientID      string `env:"CLIENT_ID" envDefault:"12345"`
	StoreURL      string `env:"STORE_URL"`
	APIKey        string `env:"API_KEY"`
	APISecret     string `env:"API_SECRET"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	APIVersion    string `env:"API_VERSION"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2026-01"
	}
	if cfg.WooCommerce.APIVersion == "" {
		cfg.WooCommerce.APIVersion = "wc/v3"
	}

	return &cfg, nil
}
