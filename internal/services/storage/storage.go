package storage

import (
	"fmt"

	"github.com/edenhq/meeting-api/pkg/config"
)

// NewFromConfig selects the object store backend from configuration.
func NewFromConfig(cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Backend {
	case "local", "":
		return NewLocalStore(cfg.LocalDir)
	case "supabase":
		return NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
