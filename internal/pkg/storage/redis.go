package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/models"
)

const documentKeyPrefix = "pokepaste:doc:"

// RedisDocumentCache caches fetched paste documents. It satisfies pokepaste.Cache.
type RedisDocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDocumentCache(ctx context.Context, cfg *config.RedisConfig) (*RedisDocumentCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisDocumentCache(client, cfg.TTL), nil
}

func newRedisDocumentCache(client *redis.Client, ttl time.Duration) *RedisDocumentCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisDocumentCache{client: client, ttl: ttl}
}

func documentKey(url string) string {
	return documentKeyPrefix + url
}

// Get returns false on a cache miss
func (c *RedisDocumentCache) Get(ctx context.Context, url string) (*models.PasteDocument, bool, error) {
	data, err := c.client.Get(ctx, documentKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get document: %w", err)
	}

	var doc models.PasteDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, true, nil
}

func (c *RedisDocumentCache) Set(ctx context.Context, url string, doc *models.PasteDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return c.client.Set(ctx, documentKey(url), data, c.ttl).Err()
}

func (c *RedisDocumentCache) Close() error {
	return c.client.Close()
}
