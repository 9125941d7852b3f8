package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"medpulse/internal/config"
	"medpulse/pkg/logging"
)

// Open builds the backend named by cfg.StoreBackend. The returned func
// releases its connections.
func Open(ctx context.Context, cfg *config.Config, logger *logging.Logger) (Backend, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return NewMemory(logger), func() {}, nil

	case "", "file":
		f, err := NewFile(cfg.DataDir, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("file store ready", "dir", cfg.DataDir)
		return f, func() {}, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("store: pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("store: ping postgres: %w", err)
		}
		pg := NewPostgres(pool, logger)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("connected to postgres")
		return pg, pool.Close, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("store: ping redis: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.RedisAddr)
		return NewRedis(client, logger), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("store: unknown backend %q", cfg.StoreBackend)
}
