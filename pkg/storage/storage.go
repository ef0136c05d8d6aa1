package storage

import (
	"context"
	"fmt"

	"stocktracker/config"
	"stocktracker/pkg/storage/kv"
	"stocktracker/pkg/storage/postgres"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open returns the watchlist backend selected by cfg.Watchlist.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (kv.Storage, error) {
	switch cfg.Watchlist.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory watchlist storage; changes are lost on exit")
		return kv.NewMemoryStore(), nil

	case config.BackendFile:
		s, err := kv.NewFileStore(cfg.Watchlist.Dir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file watchlist storage", zap.String("dir", cfg.Watchlist.Dir))
		return s, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("using redis watchlist storage", zap.String("addr", cfg.Redis.Addr))
		return kv.NewRedisStore(client), nil

	case config.BackendPostgres:
		client, err := postgres.InitializeAndMigrateKVRecord(cfg.Postgres, cfg.App.Env, cfg.App.Env != "prod")
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres watchlist storage", zap.String("dbname", cfg.Postgres.DBName))
		return client, nil

	default:
		return nil, fmt.Errorf("unknown watchlist backend %q", cfg.Watchlist.Backend)
	}
}
