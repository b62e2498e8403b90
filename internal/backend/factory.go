// Package backend selects and builds the storage implementation from
// configuration.
package backend

import (
	"fmt"

	"github.com/nullvectorcodes/atm-machine/internal/config"
	"github.com/nullvectorcodes/atm-machine/internal/storage"
	"github.com/nullvectorcodes/atm-machine/internal/storage/file"
	"github.com/nullvectorcodes/atm-machine/internal/storage/sqlite"
)

// Open builds the Store named by cfg.StorageBackend.
func Open(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case "file":
		store, err := file.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
