package repo

import (
	"context"

	"nmjl-service/internal/config"
	"nmjl-service/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var RDB *redis.Client

// InitRedis connects the suggestion cache. A disabled or unreachable redis
// leaves RDB nil and the service runs uncached.
func InitRedis(ctx context.Context) {
	conf := config.GlobalConfig.Redis
	if !conf.Enabled {
		logger.Log.Info("redis disabled; suggestions are not cached")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Log.Warn("Failed to connect to Redis; suggestions are not cached",
			zap.String("addr", conf.Addr), zap.Error(err))
		_ = client.Close()
		return
	}
	RDB = client
}
