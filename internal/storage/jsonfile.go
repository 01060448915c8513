package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendlog/internal/core"
)

// JSONFileRepository persists the collection as a single JSON array in one
// file, the moral equivalent of a browser local-storage key. The whole file
// is rewritten on every save.
type JSONFileRepository struct {
	path string
}

func NewJSONFileRepository(path string) (*JSONFileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONFileRepository{path: path}, nil
}

// Load reads the collection from the data file. A missing file is a normal
// first run and yields an empty collection. Structurally incompatible
// content is logged and also yields an empty collection; the next save
// overwrites it.
func (r *JSONFileRepository) Load(ctx context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		slog.ErrorContext(ctx, "Data file is not valid JSON, starting empty",
			"path", r.path, "error", err)
		return nil, nil
	}

	expenses := make([]core.Expense, 0, len(records))
	for i, rec := range records {
		e, err := fromRecord(rec)
		if err != nil {
			slog.ErrorContext(ctx, "Data file record is incompatible, starting empty",
				"path", r.path, "index", i, "error", err)
			return nil, nil
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// Save serializes the full collection and replaces the data file. The write
// goes through a temp file and rename so a crash mid-write never leaves a
// truncated collection behind.
func (r *JSONFileRepository) Save(_ context.Context, expenses []core.Expense) error {
	records := make([]record, len(expenses))
	for i, e := range expenses {
		records[i] = toRecord(e)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal expenses: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
