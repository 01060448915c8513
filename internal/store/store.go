// Package store holds the authoritative in-memory expense collection and
// the current filter state.
//
// The store is the sole mutator of the collection. Every mutation writes
// the full collection through to the repository and invalidates derived
// views; readers always get snapshot copies, never the backing slice.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"spendlog/internal/core"
	"spendlog/internal/storage"
)

var (
	// ErrExpenseNotFound reports an update or delete against an unknown id.
	// Call sites that want the lenient original behavior treat it as a no-op.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotReady reports a mutation attempted before the initial load.
	ErrNotReady = errors.New("store not ready")
)

// State is the store lifecycle: Loading until the initial load attempt
// finishes, then Ready for good. There is no transition back.
type State int

const (
	Loading State = iota
	Ready
)

// FilterUpdate carries a partial filter change; nil fields keep their
// current value.
type FilterUpdate struct {
	Search    *string
	Category  *core.Category
	StartDate *core.Date
	EndDate   *core.Date
}

type Store struct {
	repo  storage.Repository
	now   func() time.Time
	newID func() string

	mu       sync.Mutex
	state    State
	expenses []core.Expense
	filters  core.Filters
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClock replaces the time source, pinning "today" and the mutation
// timestamps under test.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the expense id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		repo:    repo,
		now:     time.Now,
		newID:   uuid.NewString,
		filters: core.DefaultFilters(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open performs the one-time initial load. Both success and failure lead to
// Ready: a failed or malformed durable read degrades to an empty collection
// and is logged, never surfaced as a fatal state.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Ready {
		return nil
	}

	expenses, err := s.repo.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Initial load failed, starting with empty collection", "error", err)
		expenses = nil
	}
	s.expenses = expenses
	s.state = Ready
	slog.InfoContext(ctx, "Expense store ready", "count", len(s.expenses))
	return nil
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AddExpense creates a new expense from caller-validated input, assigns a
// fresh id and timestamps, prepends it, and persists the collection.
func (s *Store) AddExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return core.Expense{}, ErrNotReady
	}

	now := s.now()
	e := core.Expense{
		ID:          s.newID(),
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.expenses = append([]core.Expense{e}, s.expenses...)
	s.persist(ctx)
	return e, nil
}

// UpdateExpense replaces the mutable fields of the expense with the given
// id and refreshes UpdatedAt. CreatedAt and ID never change. Returns
// ErrExpenseNotFound for an unknown id, leaving the collection untouched.
func (s *Store) UpdateExpense(ctx context.Context, id string, in core.ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return core.Expense{}, ErrNotReady
	}

	for i, e := range s.expenses {
		if e.ID != id {
			continue
		}
		e.Date = in.Date
		e.Description = in.Description
		e.Amount = in.Amount
		e.Category = in.Category
		e.UpdatedAt = s.now()
		s.expenses[i] = e
		s.persist(ctx)
		return e, nil
	}
	return core.Expense{}, ErrExpenseNotFound
}

// DeleteExpense removes the expense with the given id. Returns
// ErrExpenseNotFound for an unknown id, leaving the collection untouched.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Ready {
		return ErrNotReady
	}

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return ErrExpenseNotFound
}

// GetExpenseByID returns the expense with the given id, or false.
func (s *Store) GetExpenseByID(id string) (core.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// SetFilters merges a partial update into the current filter state.
func (s *Store) SetFilters(update FilterUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if update.Search != nil {
		s.filters.Search = *update.Search
	}
	if update.Category != nil {
		s.filters.Category = *update.Category
	}
	if update.StartDate != nil {
		s.filters.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		s.filters.EndDate = *update.EndDate
	}
}

// ClearFilters resets the filter state to its defaults.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = core.DefaultFilters()
}

// Filters returns the current filter state.
func (s *Store) Filters() core.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Expenses returns a snapshot copy of the full collection.
func (s *Store) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// FilteredExpenses applies the current filters to a snapshot of the
// collection, preserving insertion order.
func (s *Store) FilteredExpenses() []core.Expense {
	s.mu.Lock()
	filters := s.filters
	expenses := s.snapshot()
	s.mu.Unlock()
	return core.ApplyFilters(expenses, filters)
}

// Summary recomputes the aggregate summary from the full collection using
// the store's clock for "this month".
func (s *Store) Summary() core.Summary {
	s.mu.Lock()
	expenses := s.snapshot()
	now := s.now()
	s.mu.Unlock()
	return core.ComputeSummary(expenses, now)
}

func (s *Store) snapshot() []core.Expense {
	out := make([]core.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// persist writes the collection through to the repository. A write failure
// is logged but never fails the mutation: in-memory state stays
// authoritative for the session. Callers hold the lock.
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.expenses); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expenses, in-memory state remains authoritative",
			"error", err, "count", len(s.expenses))
	}
}
