package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rpggio/coursetrack/internal/config"
	"github.com/rpggio/coursetrack/internal/kvstore"
	"github.com/rpggio/coursetrack/internal/repository"
	"github.com/rpggio/coursetrack/internal/sqlite"
)

// openStore opens the configured progress backend. The returned func releases
// it and is safe to call when nothing needs releasing.
func openStore(cfg config.StorageConfig) (repository.KVStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), func() {}, nil
	case config.BackendFile:
		store, err := kvstore.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return store, func() {}, nil
	case config.BackendSQLite:
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		return sqlite.NewKVRepository(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
