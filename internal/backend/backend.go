// Package backend selects and builds the persistence backend from
// configuration.
package backend

import (
	"fmt"

	"spendlog/internal/config"
	"spendlog/internal/storage"
)

// Type identifies a persistence backend.
type Type string

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{JSONBackend, SQLiteBackend, MemoryBackend}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the repository and its cleanup function.
type Result struct {
	Repository storage.Repository
	Cleanup    CleanupFunc
}

// BackendConfig holds what the factory needs to build a backend.
type BackendConfig struct {
	Type Type

	// JSON specific
	JSONDataPath string

	// SQLite specific
	SQLiteDBPath string
}

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (BackendConfig, error) {
	if appConfig == nil {
		return BackendConfig{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return BackendConfig{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return BackendConfig{
		Type:         backendType,
		JSONDataPath: appConfig.JSONDataPath,
		SQLiteDBPath: appConfig.SQLiteDBPath,
	}, nil
}

// Validate validates the backend configuration.
func (c BackendConfig) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case JSONBackend:
		if c.JSONDataPath == "" {
			return fmt.Errorf("JSON data path is required for json backend")
		}
	case SQLiteBackend:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryBackend:
		// Nothing to validate.
	}

	return nil
}
