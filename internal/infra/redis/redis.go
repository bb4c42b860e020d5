package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube-go/internal/config"
	"yatube-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errNotInitialized = errors.New("redis client not initialized")

var client *redis.Client

// Init 连接 Redis。首页缓存依赖它，连不上时直接返回错误
func Init(cfg *config.RedisConfig) error {
	c := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to ping redis %s: %w", cfg.Addr(), err)
	}

	client = c
	logger.Info("Redis connected", zap.String("addr", cfg.Addr()), zap.Int("db", cfg.DB))
	return nil
}

// Ping 健康检查
func Ping(ctx context.Context) error {
	if client == nil {
		return errNotInitialized
	}
	return client.Ping(ctx).Err()
}

func Get() *redis.Client {
	return client
}

func Close() error {
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}
