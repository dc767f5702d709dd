package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL or DB_URL environment variable is required")

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT" default:"8000"`
		Host     string `envconfig:"HOST" default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME" default:"Task Manager API"`
		Version  string `envconfig:"VERSION" default:"1.0.0"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	// DatabaseURL takes precedence over DB.URL.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLEcho     bool   `envconfig:"SQL_ECHO"`

	DB struct {
		URL                string `envconfig:"URL"`
		PoolSize           int    `envconfig:"POOL_SIZE" default:"5"`
		MaxOverflow        int    `envconfig:"MAX_OVERFLOW" default:"10"`
		PoolRecycleSeconds int    `envconfig:"POOL_RECYCLE_SECONDS" default:"3600"`
		MaxRetry           int    `envconfig:"MAX_RETRY" default:"3"`
		RetryWaitTime      int    `envconfig:"RETRY_WAIT_TIME" default:"1"`
		MigrationTable     string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
		AutoMigrate        bool   `envconfig:"AUTO_MIGRATE"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	} `envconfig:"EXTERNAL"`
}

// ConnectionString returns DATABASE_URL, falling back to DB_URL.
func (c *Config) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return c.DB.URL
}

// Load reads .env (when present) and the process environment into a new Config.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
	} else {
		log.Info().Msg("Successfully loaded variables from .env file into environment")
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing environment variables: %w", err)
	}

	if cfg.ConnectionString() == "" {
		return nil, ErrMissingDatabaseURL
	}

	log.Info().Msg("Service configuration initialized successfully")

	return cfg, nil
}
