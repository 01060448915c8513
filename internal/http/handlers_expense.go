package http

import (
	"errors"
	"log/slog"
	"net/http"

	"spendlog/internal/core"
	"spendlog/internal/store"
)

// expenseView is the template-facing shape of an expense.
type expenseView struct {
	ID          string
	Date        string
	DateISO     string
	Description string
	Amount      string
	Category    string
}

func toExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Date:        e.Date.Display(),
		DateISO:     e.Date.ISO(),
		Description: e.Description,
		Amount:      e.Amount.USD(),
		Category:    string(e.Category),
	}
}

func toExpenseViews(expenses []core.Expense) []expenseView {
	views := make([]expenseView, len(expenses))
	for i, e := range expenses {
		views[i] = toExpenseView(e)
	}
	return views
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	in, err := parseExpenseInput(r.Form, s.now())
	if err != nil {
		slog.WarnContext(r.Context(), "Expense input rejected", "error", err)
		UnprocessableEntityError(inputErrorMessage(err)).Write(w)
		return
	}

	expense, err := s.store.AddExpense(r.Context(), in)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err)
		InternalServerError("Could not save expense").Write(w)
		return
	}
	s.invalidateFragments()

	NewHTMXResponse().
		Status(http.StatusCreated).
		TriggerExpenseCreated(expense.ID).
		TriggerInsightsRefresh().
		TriggerSuccessNotification("Expense added").
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodPut); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.Form.Get("id")
	if id == "" {
		BadRequestError("Missing expense id").Write(w)
		return
	}

	in, err := parseExpenseInput(r.Form, s.now())
	if err != nil {
		slog.WarnContext(r.Context(), "Expense input rejected", "error", err, "expense_id", id)
		UnprocessableEntityError(inputErrorMessage(err)).Write(w)
		return
	}

	expense, err := s.store.UpdateExpense(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, store.ErrExpenseNotFound) {
			NotFoundError("Expense not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Update expense failed", "error", err, "expense_id", id)
		InternalServerError("Could not update expense").Write(w)
		return
	}
	s.invalidateFragments()

	NewHTMXResponse().
		TriggerExpenseUpdated(expense.ID).
		TriggerInsightsRefresh().
		TriggerSuccessNotification("Expense updated").
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := r.Form.Get("id")
	if id == "" {
		id = r.URL.Query().Get("id")
	}
	if id == "" {
		BadRequestError("Missing expense id").Write(w)
		return
	}

	// Deleting an unknown id is a no-op so stale rows in a second tab
	// cannot produce an error the user can do nothing about.
	if err := s.store.DeleteExpense(r.Context(), id); err != nil && !errors.Is(err, store.ErrExpenseNotFound) {
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "expense_id", id)
		InternalServerError("Could not delete expense").Write(w)
		return
	}
	s.invalidateFragments()

	NewHTMXResponse().
		TriggerExpenseDeleted(id).
		TriggerInsightsRefresh().
		TriggerSuccessNotification("Expense deleted").
		Write(w)
}

func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	expenses := s.store.FilteredExpenses()
	filters := s.store.Filters()
	data := struct {
		Expenses      []expenseView
		Count         int
		Total         int
		FiltersActive bool
	}{
		Expenses:      toExpenseViews(expenses),
		Count:         len(expenses),
		Total:         len(s.store.Expenses()),
		FiltersActive: filters.IsActive(),
	}
	s.renderPartial(w, r, "expense_list.html", data)
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	update, err := parseFilterUpdate(r.Form)
	if err != nil {
		UnprocessableEntityError(inputErrorMessage(err)).Write(w)
		return
	}

	s.store.SetFilters(update)
	s.invalidateFragments()

	NewHTMXResponse().TriggerFiltersChanged().Write(w)
}

func (s *Server) handleClearFilters(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	s.store.ClearFilters()
	s.invalidateFragments()

	NewHTMXResponse().TriggerFiltersChanged().Write(w)
}

// inputErrorMessage maps validation errors to user-facing messages.
func inputErrorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return "Please enter a valid date"
	case errors.Is(err, core.ErrFutureDate):
		return "Date cannot be in the future"
	case errors.Is(err, core.ErrInvalidAmount):
		return "Please enter a valid positive amount"
	case errors.Is(err, core.ErrAmountTooLarge):
		return "Amount exceeds the maximum allowed"
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description is required"
	case errors.Is(err, core.ErrInvalidCategory):
		return "Please choose a valid category"
	default:
		return err.Error()
	}
}
