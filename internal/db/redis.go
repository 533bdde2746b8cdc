package db

import (
	"backend-erickshaw/internal/config"
	"backend-erickshaw/internal/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns nil when no address is configured; the stream hub
// then runs without cross-process fan-out.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.For("db").Warn("redis disabled, stream fan-out is local only")
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
