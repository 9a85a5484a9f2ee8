package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures process-level configuration so main stays lean.
type Config struct {
	Addr        string `env:"DOCPANEL_ADDR" envDefault:":3001"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisURL    string `env:"REDIS_URL"`

	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_NOTIFICATIONS_TOPIC" envDefault:"docpanel.notifications"`

	// PendingTTL is the age threshold for the expiration sweep.
	PendingTTL time.Duration `env:"PENDING_TTL" envDefault:"30m"`

	// RelayInterval is how often the outbox worker drains pending notifications.
	RelayInterval time.Duration `env:"RELAY_INTERVAL" envDefault:"2s"`

	// AdminCacheTTL bounds staleness of the redis admin-set cache.
	AdminCacheTTL time.Duration `env:"ADMIN_CACHE_TTL" envDefault:"5m"`
}

// Load builds a Config from environment variables.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
