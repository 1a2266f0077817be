package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ericfisherdev/academia/internal/adapter/driven/memory"
	redisadapter "github.com/ericfisherdev/academia/internal/adapter/driven/redis"
	sqliteadapter "github.com/ericfisherdev/academia/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/academia/internal/config"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// storage is an opened blob backend. pinger is nil for the in-memory store.
type storage struct {
	store  driven.BlobStore
	pinger driven.Pinger
	close  func() error
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		// Dual reader/writer with WAL mode; migrations run on the writer.
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("database opened", "path", cfg.DBPath)
		return &storage{store: sqliteadapter.NewBlobRepo(db), pinger: db, close: db.Close}, nil

	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redisadapter.NewBlobStore(rdb, cfg.RedisPrefix)
		if err := store.Ping(ctx); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("redis connected", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return &storage{store: store, pinger: store, close: rdb.Close}, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on exit")
		return &storage{store: memory.NewBlobStore(), close: func() error { return nil }}, nil

	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
