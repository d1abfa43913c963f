// Package storage holds the key/value backends the task list is persisted
// to. Every backend keeps whole values under a key and overwrites them on
// write, the way browser local storage does.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-ticker/internal/config"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrInvalidKey    = errors.New("invalid storage key")
)

// Storage - хранилище ключ/значение с полной перезаписью значения.
type Storage interface {
	// GetItem returns ok=false when nothing was ever stored under key.
	GetItem(ctx context.Context, key string) (value []byte, ok bool, err error)
	SetItem(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open picks a backend from the configured driver name.
func Open(ctx context.Context, cfg config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "file":
		return NewFileStorage(cfg.DataDir)
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite":
		return NewSQLiteStorage(filepath.Join(cfg.DataDir, "taskticker.db"))
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		s := NewPostgresStorage(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
