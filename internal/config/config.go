package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Site   SiteConfig
	SMTP   SMTPConfig
}

type ServerConfig struct {
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"hiringlens"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

type RedisConfig struct {
	Addr string `envconfig:"REDIS_ADDR"`
}

type KafkaConfig struct {
	Broker string `envconfig:"KAFKA_BROKER"`
}

// SiteConfig carries the secrets of the public surface. An empty
// Password disables the site-wide access gate entirely.
type SiteConfig struct {
	Password         string `envconfig:"SITE_PASSWORD"`
	RevalidateSecret string `envconfig:"REVALIDATE_SECRET"`
}

// SMTPConfig is optional; contact messages are mailed out only when a
// host is configured.
type SMTPConfig struct {
	Host      string `envconfig:"SMTP_HOST"`
	Port      int    `envconfig:"SMTP_PORT" default:"587"`
	Username  string `envconfig:"SMTP_USERNAME"`
	Password  string `envconfig:"SMTP_PASSWORD"`
	From      string `envconfig:"SMTP_FROM"`
	ContactTo string `envconfig:"CONTACT_NOTIFY_TO"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
