package shared

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`

	// memory | sqlite | mysql | redis
	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"catalog.db"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/catalog?parseTime=true&charset=utf8mb4,utf8&loc=UTC"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"catalog:"`

	AuthSecret string `env:"AUTH_SECRET"`
	AuthIssuer string `env:"AUTH_ISSUER" envDefault:"catalog-reviews"`

	WriteRPS   float64 `env:"WRITE_RPS" envDefault:"2"`
	WriteBurst int     `env:"WRITE_BURST" envDefault:"5"`

	SeedOnStart bool   `env:"SEED_ON_START" envDefault:"true"`
	SeedFile    string `env:"SEED_FILE"`
	SeedForce   bool   `env:"SEED_FORCE" envDefault:"false"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Parse reads the environment into a Config without side effects.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch c.StoreDriver {
	case "memory", "sqlite", "mysql", "redis":
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return c, nil
}

// Load is Parse for binaries: it exits on a bad environment.
func Load() Config {
	c, err := Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if c.AuthSecret == "" {
		log.Warn().Msg("AUTH_SECRET is empty; review submission will reject every caller")
	}
	return c
}
