package redis

import (
	"context"
	"net"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/laiba166-shaikh/AI-400-task-manager/config"
)

// New connects to the primary redis. It returns nil when CACHE_REDIS_PRIMARY_HOST
// is empty; callers treat a nil client as "caching disabled".
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	if primary.Host == "" {
		log.Info().Msg("Redis not configured, caching and rate limiting disabled")

		return nil
	}

	port := primary.Port
	if port == "" {
		port = "6379"
	}

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", port).
		Msg("Connected to Redis")

	return client
}
