// Package cache 首页列表的页面缓存。
// 缓存的是渲染好的列表片段，窗口期内即使数据变化也原样返回，可随时整体清空。
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// IndexFragment 首页列表片段的缓存名
const IndexFragment = "index_page"

// PageCache 以 Redis 为后端的页面片段缓存
type PageCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, prefix string, ttl time.Duration) *PageCache {
	return &PageCache{client: client, prefix: prefix, ttl: ttl}
}

// Key 片段在 Redis 中的 key，变体（如页码）参与拼接
func (c *PageCache) Key(fragment, variant string) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, fragment, variant)
}

// Get 读取缓存，未命中时 ok 为 false
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("page cache get: %w", err)
	}
	return data, true, nil
}

// Set 写入缓存，过期时间为配置的窗口
func (c *PageCache) Set(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("page cache set: %w", err)
	}
	return nil
}

// GetOrRender 命中直接返回；未命中时渲染并写入。
// Redis 不可用时退化为直接渲染，只记录日志。
func (c *PageCache) GetOrRender(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		logger.Warn("Page cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return data, nil
	}

	data, err = render()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data); err != nil {
		logger.Warn("Page cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

// Clear 删除本缓存前缀下的全部 key
func (c *PageCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("page cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("page cache del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
