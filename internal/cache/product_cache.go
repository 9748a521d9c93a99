package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rakeshgadupudi-git/ImperialHub/internal/domain"
	pkgconfig "github.com/rakeshgadupudi-git/ImperialHub/pkg/config"
)

const productTTL = 5 * time.Minute

// ProductCache is a read-through cache for single-product lookups. A nil
// *ProductCache is valid and caches nothing, so callers never branch on
// whether caching is configured.
type ProductCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(ctx context.Context, cfg *pkgconfig.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func NewProductCache(client *redis.Client, logger *zap.Logger) *ProductCache {
	if client == nil {
		return nil
	}
	return &ProductCache{client: client, logger: logger}
}

func idKey(id string) string     { return "product:id:" + id }
func slugKey(slug string) string { return "product:slug:" + slug }

func (c *ProductCache) GetByID(ctx context.Context, id string) *domain.Product {
	if c == nil {
		return nil
	}
	return c.get(ctx, idKey(id))
}

func (c *ProductCache) GetBySlug(ctx context.Context, slug string) *domain.Product {
	if c == nil {
		return nil
	}
	return c.get(ctx, slugKey(slug))
}

func (c *ProductCache) get(ctx context.Context, key string) *domain.Product {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		c.client.Del(ctx, key)
		return nil
	}
	return &product
}

// Set stores the product under both its id and slug keys. Failures are
// logged and swallowed; the cache is never load-bearing.
func (c *ProductCache) Set(ctx context.Context, product *domain.Product) {
	if c == nil {
		return
	}
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("Failed to marshal product for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, idKey(product.ID.Hex()), data, productTTL).Err(); err != nil {
		c.logger.Warn("Failed to cache product", zap.Error(err))
		return
	}
	c.client.Set(ctx, slugKey(product.Slug), data, productTTL)
}

func (c *ProductCache) Invalidate(ctx context.Context, product *domain.Product) {
	if c == nil {
		return
	}
	c.client.Del(ctx, idKey(product.ID.Hex()), slugKey(product.Slug))
}
