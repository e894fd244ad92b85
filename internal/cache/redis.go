package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Cleve-codes/EastCom/internal/config"
	"github.com/Cleve-codes/EastCom/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis connects to Redis. The cache is optional: callers get a nil
// client back on connection failure and must degrade to DB reads.
func InitRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		logger.L().Info("redis not configured, product cache disabled")
		return nil
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, port),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.L().Warn("failed to connect to redis, product cache disabled", zap.Error(err))
		return nil
	}

	logger.L().Info("Redis connection established")
	return rdb
}

func GetProduct(ctx context.Context, rdb *redis.Client, slug string) ([]byte, error) {
	key := fmt.Sprintf("product:%s", slug)
	return rdb.Get(ctx, key).Bytes()
}

func SetProduct(ctx context.Context, rdb *redis.Client, slug string, product interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("product:%s", slug)
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, data, ttl).Err()
}

func DeleteProduct(ctx context.Context, rdb *redis.Client, slug string) error {
	key := fmt.Sprintf("product:%s", slug)
	return rdb.Del(ctx, key).Err()
}
