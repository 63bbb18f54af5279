package models

// Expense is a single ledger entry. Rows with IsRecurring set act as
// templates that anchor generated occurrences; occurrences themselves are
// ordinary non-recurring rows.
type Expense struct {
	ID          uint64
	Amount      Money
	Category    Category
	Description string
	Date        Date
	IsRecurring bool
	Recurrence  Recurrence
}

// Validate checks the invariants the ledger relies on: a positive amount,
// a real date, and a recurrence present exactly when the row is recurring.
func (e Expense) Validate() error {
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if e.IsRecurring != (e.Recurrence != RecurrenceNone) {
		return ErrRecurrenceMismatch
	}
	return nil
}

// Budget caps monthly spend for a fixed category label.
type Budget struct {
	Category     Category
	MonthlyLimit Money
}

// NextID returns the id the ledger assigns next: one past the highest
// existing id, or 1 for an empty collection.
func NextID(expenses []Expense) uint64 {
	var max uint64
	for _, e := range expenses {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}
