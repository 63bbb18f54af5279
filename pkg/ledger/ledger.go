// Package ledger owns the in-memory expense and budget collections. Every
// mutation validates through pkg/models, persists through pkg/storage and
// re-runs recurrence expansion, so callers only ever see a consistent,
// saved state. Reads hand out copies; nothing external holds a reference
// into the ledger's storage.
package ledger

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/cashflow-tui/cashflow/pkg/models"
	"github.com/cashflow-tui/cashflow/pkg/recur"
	"github.com/cashflow-tui/cashflow/pkg/report"
	"github.com/cashflow-tui/cashflow/pkg/storage"
)

// ErrNotFound reports a stale expense id.
var ErrNotFound = errors.New("expense not found")

// ErrBudgetCategory rejects budgets keyed on freeform Other text.
var ErrBudgetCategory = errors.New("budget category must be a fixed label")

// Draft carries the fields of an expense being added or edited. The ledger
// assigns the id.
type Draft struct {
	Amount      models.Money
	Category    models.Category
	Description string
	Date        models.Date
	IsRecurring bool
	Recurrence  models.Recurrence
}

func (d Draft) expense(id uint64) models.Expense {
	return models.Expense{
		ID:          id,
		Amount:      d.Amount,
		Category:    d.Category,
		Description: d.Description,
		Date:        d.Date,
		IsRecurring: d.IsRecurring,
		Recurrence:  d.Recurrence,
	}
}

type Ledger struct {
	store  *storage.Store
	logger *log.Logger
	now    func() time.Time

	expenses []models.Expense
	budgets  []models.Budget
}

// Option adjusts a Ledger at construction.
type Option func(*Ledger)

// WithClock overrides the wall clock used as "today" for recurrence
// expansion.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Open loads both collections from the store, materializes due recurring
// occurrences once, and returns any parse warnings encountered. Nothing
// here is fatal: an unreadable file starts that collection empty and a
// save failure after expansion is logged, with the in-memory state
// staying authoritative either way.
func Open(store *storage.Store, logger *log.Logger, opts ...Option) (*Ledger, []storage.ParseWarning) {
	l := &Ledger{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	expenses, expenseWarnings, err := store.LoadExpenses()
	if err != nil {
		logger.Warn("could not read expenses, starting empty", "err", err)
	}
	budgets, budgetWarnings, err := store.LoadBudgets()
	if err != nil {
		logger.Warn("could not read budgets, starting empty", "err", err)
	}
	l.expenses = expenses
	l.budgets = budgets
	warnings := append(expenseWarnings, budgetWarnings...)

	if generated, err := l.expandRecurring(); err != nil {
		logger.Warn("materialized recurring expenses but could not save them", "err", err)
	} else if generated > 0 {
		logger.Info("materialized recurring expenses", "count", generated)
	}
	return l, warnings
}

func (l *Ledger) today() models.Date {
	return models.DateOf(l.now())
}

// NextID is the id the next Add will assign.
func (l *Ledger) NextID() uint64 {
	return models.NextID(l.expenses)
}

// Add validates the draft, inserts it under a fresh id, expands recurrence
// and persists. On a save failure the row stays in memory and the error is
// returned alongside the assigned id; the session remains the source of
// truth.
func (l *Ledger) Add(d Draft) (uint64, error) {
	id := l.NextID()
	e := d.expense(id)
	if err := e.Validate(); err != nil {
		return 0, err
	}
	l.expenses = append(l.expenses, e)
	l.logger.Debug("added expense", "id", id, "amount", e.Amount, "category", e.Category)

	if _, err := l.expandRecurring(); err != nil {
		return id, err
	}
	return id, l.persistExpenses()
}

// Edit replaces the fields of an existing expense in place, preserving its
// id.
func (l *Ledger) Edit(id uint64, d Draft) error {
	e := d.expense(id)
	if err := e.Validate(); err != nil {
		return err
	}
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			l.expenses[i] = e
			l.logger.Debug("edited expense", "id", id)
			if _, err := l.expandRecurring(); err != nil {
				return err
			}
			return l.persistExpenses()
		}
	}
	return ErrNotFound
}

// Delete removes an expense by id.
func (l *Ledger) Delete(id uint64) error {
	for i := range l.expenses {
		if l.expenses[i].ID == id {
			l.expenses = append(l.expenses[:i], l.expenses[i+1:]...)
			l.logger.Debug("deleted expense", "id", id)
			return l.persistExpenses()
		}
	}
	return ErrNotFound
}

// SetBudget creates or overwrites the budget for a fixed category label.
func (l *Ledger) SetBudget(category models.Category, limit models.Money) error {
	if category.Kind == models.CategoryOther && category.Other != "" {
		return ErrBudgetCategory
	}
	if limit < 0 {
		return models.ErrInvalidAmount
	}
	b := models.Budget{Category: category, MonthlyLimit: limit}
	replaced := false
	for i := range l.budgets {
		if l.budgets[i].Category.BudgetLabel() == category.BudgetLabel() {
			l.budgets[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		l.budgets = append(l.budgets, b)
	}
	if err := l.store.SaveBudgets(l.budgets); err != nil {
		return errors.Wrap(err, "save budgets")
	}
	return nil
}

// Import appends the rows of an external file under fresh ids and reports
// how many were taken along with per-row warnings.
func (l *Ledger) Import(path string) (int, []storage.ParseWarning, error) {
	imported, warnings, err := l.store.ReadImport(path)
	if err != nil {
		return 0, warnings, err
	}
	next := l.NextID()
	for i := range imported {
		imported[i].ID = next
		next++
	}
	l.expenses = append(l.expenses, imported...)
	l.logger.Info("imported expenses", "path", path, "count", len(imported), "skipped", len(warnings))

	if _, err := l.expandRecurring(); err != nil {
		return len(imported), warnings, err
	}
	return len(imported), warnings, l.persistExpenses()
}

// Export writes a snapshot of the full collection and returns its path.
func (l *Ledger) Export() (string, error) {
	return l.store.Export(l.expenses)
}

// ExpandRecurring materializes occurrences due as of the ledger's clock and
// persists when anything was generated.
func (l *Ledger) ExpandRecurring() (int, error) {
	return l.expandRecurring()
}

func (l *Ledger) expandRecurring() (int, error) {
	generated := recur.Expand(l.expenses, l.today())
	if len(generated) == 0 {
		return 0, nil
	}
	l.expenses = append(l.expenses, generated...)
	return len(generated), l.persistExpenses()
}

func (l *Ledger) persistExpenses() error {
	if err := l.store.SaveExpenses(l.expenses); err != nil {
		l.logger.Error("save failed, in-memory ledger remains authoritative", "err", err)
		return errors.Wrap(err, "save expenses")
	}
	return nil
}

// Expenses returns a copy of the collection.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Budgets returns a copy of the collection.
func (l *Ledger) Budgets() []models.Budget {
	out := make([]models.Budget, len(l.budgets))
	copy(out, l.budgets)
	return out
}

// Expense looks up a single row by id.
func (l *Ledger) Expense(id uint64) (models.Expense, bool) {
	for _, e := range l.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return models.Expense{}, false
}

// Report builds the read-only aggregation view over the current state.
func (l *Ledger) Report() *report.Report {
	return report.New(l.expenses, l.budgets)
}
