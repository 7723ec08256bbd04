package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/SearchGo/pkg/config"
)

// Config holds all configuration for the search service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SEARCH_HTTP_PORT" envDefault:"8000"`

	// Catalog source: a local CSV file, or an HTTP feed when CatalogFeedURL
	// is set (the feed takes precedence).
	CatalogPath    string `env:"CATALOG_PATH" envDefault:"data/catalog.csv"`
	CatalogFeedURL string `env:"CATALOG_FEED_URL"`

	// Elasticsearch
	ElasticsearchURL   string        `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`
	ElasticsearchIndex string        `env:"ELASTICSEARCH_INDEX" envDefault:"product_search"`
	IndexTimeout       time.Duration `env:"INDEX_TIMEOUT" envDefault:"5s"`

	// Search engine selection (elasticsearch or memory)
	SearchEngine string `env:"SEARCH_ENGINE" envDefault:"elasticsearch"`

	// Search tunables
	SampleSize   int `env:"INDEX_SAMPLE_SIZE" envDefault:"10000"`
	DefaultLimit int `env:"SEARCH_DEFAULT_LIMIT" envDefault:"50"`
	MaxLimit     int `env:"SEARCH_MAX_LIMIT" envDefault:"200"`

	// Autocomplete tunables
	SuggestMinPrefix     int `env:"SUGGEST_MIN_PREFIX" envDefault:"2"`
	SuggestMax           int `env:"SUGGEST_MAX" envDefault:"10"`
	SuggestMaxCategories int `env:"SUGGEST_MAX_CATEGORIES" envDefault:"3"`

	// Category views
	PopularMinProducts int `env:"POPULAR_MIN_PRODUCTS" envDefault:"100"`

	// Redis suggestion cache; empty address disables caching.
	RedisAddr       string        `env:"REDIS_ADDR"`
	SuggestCacheTTL time.Duration `env:"SUGGEST_CACHE_TTL" envDefault:"5m"`

	// Kafka; empty broker list disables the catalog event consumer.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"search-service"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SearchEngine != "elasticsearch" && c.SearchEngine != "memory" {
		return fmt.Errorf("invalid search engine: %s", c.SearchEngine)
	}
	if c.CatalogPath == "" && c.CatalogFeedURL == "" {
		return fmt.Errorf("either CATALOG_PATH or CATALOG_FEED_URL must be set")
	}
	if c.SampleSize < 1 {
		return fmt.Errorf("invalid index sample size: %d", c.SampleSize)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("SEARCH_MAX_LIMIT (%d) must not be below SEARCH_DEFAULT_LIMIT (%d)", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}
