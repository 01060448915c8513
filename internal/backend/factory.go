package backend

import (
	"fmt"

	"spendlog/internal/log"
	"spendlog/internal/storage"
)

// Factory creates backends based on configuration.
type Factory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend builds the repository selected by the config.
func (f *Factory) CreateBackend(config BackendConfig) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	switch config.Type {
	case JSONBackend:
		return f.createJSONBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *Factory) createJSONBackend(config BackendConfig) (*Result, error) {
	repo, err := storage.NewJSONFileRepository(config.JSONDataPath)
	if err != nil {
		return nil, fmt.Errorf("initialize JSON repository: %w", err)
	}

	f.logger.Info("JSON file backend initialized", log.FieldFile, config.JSONDataPath)
	return &Result{
		Repository: repo,
		Cleanup:    func() error { return nil },
	}, nil
}

func (f *Factory) createSQLiteBackend(config BackendConfig) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("SQLite backend initialized", log.FieldFile, config.SQLiteDBPath)
	return &Result{
		Repository: repo,
		Cleanup:    repo.Close,
	}, nil
}

func (f *Factory) createMemoryBackend() (*Result, error) {
	f.logger.Warn("memory backend initialized, expenses will not survive restarts")
	return &Result{
		Repository: storage.NewMemoryRepository(),
		Cleanup:    func() error { return nil },
	}, nil
}
