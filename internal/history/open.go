package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phravins/gptflow/internal/config"
)

// Open returns the store named by cfg.HistoryBackend.
func Open(cfg *config.Config) (Store, error) {
	backend := strings.TrimSpace(strings.ToLower(cfg.HistoryBackend))
	path := cfg.HistoryPath
	if path == "" {
		path = filepath.Join(config.DataDir(), "history.json")
	}

	switch backend {
	case "", "file":
		return NewFileStore(path), nil
	case "sqlite":
		if ext := filepath.Ext(path); ext == ".json" {
			path = strings.TrimSuffix(path, ext) + ".db"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		key := cfg.StorageKey
		if key == "" {
			key = config.DefaultStorageKey
		}
		return NewSQLiteStore(path, key)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}
