// Package storage selects the key-value backend behind domain.Store.
package storage

import (
	"context"
	"fmt"

	"class-companion/internal/adapter"
	"class-companion/internal/cache"
	"class-companion/internal/config"
	"class-companion/internal/database"
	"class-companion/internal/domain"
	"class-companion/internal/logger"
	"class-companion/internal/repository"

	"go.uber.org/zap"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQL    = "sql"
)

// CloseFunc releases the connections held by a backend.
type CloseFunc func() error

func noopClose() error { return nil }

// Open builds the Store named by cfg.Storage.Backend. The sql backend runs
// pending migrations before returning.
func Open(ctx context.Context, cfg *config.Config) (domain.Store, CloseFunc, error) {
	log := logger.Get()

	switch cfg.Storage.Backend {
	case BackendMemory, "":
		log.Info("Using in-memory storage; progress is lost on restart")
		return adapter.NewMemoryStoreAdapter(), noopClose, nil

	case BackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Connected to Redis", zap.String("address", cfg.Redis.Address))
		return adapter.NewRedisStoreAdapter(client), client.Close, nil

	case BackendSQL:
		db, err := database.Open(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db, cfg.DB.Driver, database.Up); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Connected to database", zap.String("driver", cfg.DB.Driver))
		tx := repository.NewTransactionManagerAdapter(db)
		return repository.NewKVStoreRepository(db, tx), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}
