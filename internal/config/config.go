package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	AppVersion     string   `env:"APP_VERSION" envDefault:"unknown"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	StaticDir      string   `env:"STATIC_DIR"`
	CookieSecure   bool     `env:"COOKIE_SECURE" envDefault:"false"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	RedisAddress   string        `env:"REDIS_ADDRESS"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"0s"`

	UserBackend string `env:"USER_BACKEND" envDefault:"memory"`
	DatabaseURL string `env:"DB_CONNECTION_STRING"`

	RabbitMQURL    string `env:"RABBITMQ_URL"`
	EventQueueName string `env:"EVENT_QUEUE_NAME" envDefault:"activity_events"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddress == "" {
			return errors.New("REDIS_ADDRESS is required when SESSION_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}

	switch c.UserBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DB_CONNECTION_STRING is required when USER_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unsupported USER_BACKEND %q", c.UserBackend)
	}

	if c.SessionTTL < 0 {
		return errors.New("SESSION_TTL must not be negative")
	}
	return nil
}
