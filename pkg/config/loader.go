package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates cfg from process environment variables. Fields opt in with
// `env` tags; `envDefault` supplies the value when the variable is unset.
//
//	type Config struct {
//	    HTTPPort         int    `env:"SEARCH_HTTP_PORT" envDefault:"8000"`
//	    ElasticsearchURL string `env:"ELASTICSEARCH_URL"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("load config from environment: %w", err)
	}
	return nil
}
