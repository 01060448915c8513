// Package storage provides durable persistence for the expense collection.
//
// Every backend implements Repository: the collection is loaded once at
// startup and written back whole on every mutation. There is no partial
// write and no schema migration of serialized data; an incompatible durable
// copy degrades to an empty collection on load.
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spendlog/internal/core"
)

// Repository owns the durable copy of the expense collection, treated as a
// write-through cache of the store's in-memory state.
type Repository interface {
	// Load reads the full collection. A missing durable copy yields an
	// empty collection, not an error.
	Load(ctx context.Context) ([]core.Expense, error)

	// Save overwrites the durable copy with the full collection.
	Save(ctx context.Context, expenses []core.Expense) error
}

// record is the durable serialization of one expense: amounts as dollars,
// dates as YYYY-MM-DD, timestamps as RFC 3339.
type record struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRecord(e core.Expense) record {
	return record{
		ID:          e.ID,
		Amount:      e.Amount.Dollars(),
		Category:    string(e.Category),
		Description: e.Description,
		Date:        e.Date.ISO(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func fromRecord(r record) (core.Expense, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse date %q: %w", r.Date, err)
	}
	cat := core.Category(r.Category)
	if !cat.IsValid() {
		return core.Expense{}, fmt.Errorf("unknown category %q: %w", r.Category, core.ErrInvalidCategory)
	}
	return core.Expense{
		ID:          r.ID,
		Date:        date,
		Description: r.Description,
		Amount:      core.MoneyFromDollars(r.Amount),
		Category:    cat,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

// MemoryRepository keeps the collection in process memory. Used as the
// throwaway backend and in tests.
type MemoryRepository struct {
	mu       sync.Mutex
	expenses []core.Expense
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Load(_ context.Context) ([]core.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Expense, len(m.expenses))
	copy(out, m.expenses)
	return out, nil
}

func (m *MemoryRepository) Save(_ context.Context, expenses []core.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses = make([]core.Expense, len(expenses))
	copy(m.expenses, expenses)
	return nil
}
