// Package bootstrap builds the fetcher and storage shared by the binaries.
package bootstrap

import (
	"context"
	"log/slog"

	"github.com/Vodeneev/pokepaste/internal/parser/pokepaste"
	"github.com/Vodeneev/pokepaste/internal/pkg/config"
	"github.com/Vodeneev/pokepaste/internal/pkg/storage"
)

// Fetcher returns the paste client, backed by Redis when redis.addr is set.
// A Redis that cannot be reached is logged and skipped. The returned func closes the cache.
func Fetcher(ctx context.Context, cfg *config.Config) (*pokepaste.Client, func()) {
	client := pokepaste.NewClient(cfg.Fetcher)
	if cfg.Redis.Addr == "" {
		return client, func() {}
	}

	cache, err := storage.NewRedisDocumentCache(ctx, &cfg.Redis)
	if err != nil {
		slog.Warn("Redis cache unavailable, fetching without cache", "addr", cfg.Redis.Addr, "error", err)
		return client, func() {}
	}
	slog.Info("Redis document cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	return client.WithCache(cache), func() { _ = cache.Close() }
}

// Storage opens the Postgres team store. It returns nil, nil when postgres.dsn is empty.
func Storage(ctx context.Context, cfg *config.Config) (storage.TeamStorage, error) {
	if cfg.Postgres.DSN == "" {
		return nil, nil
	}
	return storage.NewPostgresTeamStorage(ctx, &cfg.Postgres)
}
