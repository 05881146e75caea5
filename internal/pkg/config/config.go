package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	AdminAddr string `env:"ADMIN_ADDR" envDefault:":9091"`

	PostgresURL string `env:"POSTGRES_URL,required"`

	// RedisAddr is optional; when empty the merchant-directory cache is
	// disabled and lookups always hit Postgres.
	RedisAddr        string        `env:"REDIS_ADDR"`
	MerchantCacheTTL time.Duration `env:"MERCHANT_CACHE_TTL" envDefault:"10m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"feed-events"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID" envDefault:"fraud-lens-ingest"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
