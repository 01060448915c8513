package storage

import (
	"context"
	"path/filepath"
	"testing"

	"spendlog/internal/core"
)

func TestSQLiteRoundTrip(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "spendlog.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	want := testCollection()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d expenses, want %d", len(got), len(want))
	}
	byID := make(map[string]core.Expense, len(got))
	for _, e := range got {
		byID[e.ID] = e
	}
	for _, w := range want {
		g, ok := byID[w.ID]
		if !ok {
			t.Fatalf("expense %s missing after round trip", w.ID)
		}
		if g.Amount != w.Amount || g.Category != w.Category ||
			g.Description != w.Description || g.Date.ISO() != w.Date.ISO() ||
			!g.CreatedAt.Equal(w.CreatedAt) || !g.UpdatedAt.Equal(w.UpdatedAt) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", g, w)
		}
	}
}

func TestSQLiteSaveReplacesCollection(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "spendlog.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()
	ctx := context.Background()

	all := testCollection()
	if err := repo.Save(ctx, all); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, all[:1]); err != nil {
		t.Fatalf("save subset: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != all[0].ID {
		t.Fatalf("expected only %s to survive, got %+v", all[0].ID, got)
	}
}
