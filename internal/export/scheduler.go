package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"spendlog/internal/storage"
)

// Scheduler periodically writes CSV and JSON snapshots of the expense
// collection into a local directory. It reads straight from the repository
// so it can run as its own process alongside the server.
type Scheduler struct {
	repo     storage.Repository
	dir      string
	interval time.Duration
	now      func() time.Time
}

func NewScheduler(repo storage.Repository, dir string, interval time.Duration) *Scheduler {
	return &Scheduler{
		repo:     repo,
		dir:      dir,
		interval: interval,
		now:      time.Now,
	}
}

// Run exports one snapshot immediately, then once per interval until the
// context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	if err := s.ExportOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup export failed", "error", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Export scheduler stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := s.ExportOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Scheduled export failed", "error", err)
			}
		}
	}
}

// ExportOnce writes one timestamped CSV and JSON snapshot. An empty
// collection is skipped quietly; there is nothing useful to write.
func (s *Scheduler) ExportOnce(ctx context.Context) error {
	expenses, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}
	if len(expenses) == 0 {
		slog.InfoContext(ctx, "No expenses to export, skipping snapshot")
		return nil
	}

	now := s.now()
	stamp := now.Format("2006-01-02_150405")

	csvContent, err := CSV(expenses)
	if err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	csvPath := filepath.Join(s.dir, fmt.Sprintf("expenses_%s.csv", stamp))
	if err := os.WriteFile(csvPath, []byte(csvContent), 0644); err != nil {
		return fmt.Errorf("write csv snapshot: %w", err)
	}

	jsonContent, err := JSON(expenses)
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	jsonPath := filepath.Join(s.dir, fmt.Sprintf("expenses_%s.json", stamp))
	if err := os.WriteFile(jsonPath, jsonContent, 0644); err != nil {
		return fmt.Errorf("write json snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Export snapshot written",
		"count", len(expenses), "csv", csvPath, "json", jsonPath)
	return nil
}
