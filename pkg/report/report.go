// Package report computes the derived, read-only views behind the
// dashboard and monthly screens. Every function is a pure query over the
// snapshot a Report was built from: no mutation, no persistence, no
// recurrence expansion.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

// Report is an immutable view over one ledger snapshot.
type Report struct {
	expenses []models.Expense
	budgets  map[string]models.Money
}

// New builds a report over copies of the given collections.
func New(expenses []models.Expense, budgets []models.Budget) *Report {
	snapshot := make([]models.Expense, len(expenses))
	copy(snapshot, expenses)

	limits := make(map[string]models.Money, len(budgets))
	for _, b := range budgets {
		limits[b.Category.BudgetLabel()] = b.MonthlyLimit
	}
	return &Report{expenses: snapshot, budgets: limits}
}

// monthRange returns the first and last instant of a month.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	anchor := now.New(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	return anchor.BeginningOfMonth(), anchor.EndOfMonth()
}

func (r *Report) sumBetween(from, to time.Time) models.Money {
	var total models.Money
	for _, e := range r.expenses {
		if !e.Date.Before(from) && !e.Date.After(to) {
			total += e.Amount
		}
	}
	return total
}

// MonthlyTotal sums every expense dated in the given month.
func (r *Report) MonthlyTotal(year int, month time.Month) models.Money {
	from, to := monthRange(year, month)
	return r.sumBetween(from, to)
}

// YearlyTotal sums every expense dated in the given year. It equals the sum
// of the twelve monthly totals.
func (r *Report) YearlyTotal(year int) models.Money {
	anchor := now.New(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	return r.sumBetween(anchor.BeginningOfYear(), anchor.EndOfYear())
}

// CategoryAmount is one bar of the category breakdown.
type CategoryAmount struct {
	Category string
	Amount   models.Money
}

// CategoryBreakdown groups the month's spend by category display name,
// largest first. Ties order by name so the result is deterministic.
func (r *Report) CategoryBreakdown(year int, month time.Month) []CategoryAmount {
	from, to := monthRange(year, month)
	byCategory := make(map[string]models.Money)
	for _, e := range r.expenses {
		if !e.Date.Before(from) && !e.Date.After(to) {
			byCategory[e.Category.String()] += e.Amount
		}
	}
	out := make([]CategoryAmount, 0, len(byCategory))
	for name, amount := range byCategory {
		out = append(out, CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Tier classifies spend against a monthly limit.
type Tier int

const (
	TierNoLimit Tier = iota
	TierUnder
	TierNear
	TierOver
)

func (t Tier) String() string {
	switch t {
	case TierUnder:
		return "under"
	case TierNear:
		return "near"
	case TierOver:
		return "over"
	default:
		return "no limit"
	}
}

// BudgetStatus compares a category's monthly spend against its configured
// limit. Boundaries are inclusive: ratio >= 1.0 is over, 0.90 <= ratio <
// 1.0 is near. A category with no budget row reports TierNoLimit.
type BudgetStatus struct {
	Category string
	Spent    models.Money
	Limit    models.Money
	Ratio    float64
	Tier     Tier
}

func (r *Report) BudgetStatus(category models.Category, year int, month time.Month) BudgetStatus {
	label := category.BudgetLabel()
	spent := r.categorySpend(category, year, month)

	limit, ok := r.budgets[label]
	if !ok {
		return BudgetStatus{Category: label, Spent: spent, Tier: TierNoLimit}
	}

	status := BudgetStatus{Category: label, Spent: spent, Limit: limit}
	switch {
	case limit == 0 && spent == 0:
		status.Tier = TierUnder
	case limit == 0:
		status.Ratio = 1
		status.Tier = TierOver
	default:
		status.Ratio = spent.Float() / limit.Float()
		switch {
		case status.Ratio >= 1.0:
			status.Tier = TierOver
		case status.Ratio >= 0.90:
			status.Tier = TierNear
		default:
			status.Tier = TierUnder
		}
	}
	return status
}

// categorySpend folds every Other variant into the plain label, matching
// how budgets are keyed.
func (r *Report) categorySpend(category models.Category, year int, month time.Month) models.Money {
	from, to := monthRange(year, month)
	var total models.Money
	for _, e := range r.expenses {
		if e.Category.BudgetLabel() != category.BudgetLabel() {
			continue
		}
		if !e.Date.Before(from) && !e.Date.After(to) {
			total += e.Amount
		}
	}
	return total
}

// DayTotal is one point of the spending sparkline.
type DayTotal struct {
	Date  models.Date
	Total models.Money
}

// DailySparkline returns exactly days entries ending at today, oldest
// first. Days with no expenses appear with a zero total; no day is skipped.
func (r *Report) DailySparkline(days int, today models.Date) []DayTotal {
	totals := make(map[string]models.Money)
	for _, e := range r.expenses {
		totals[e.Date.String()] += e.Amount
	}
	out := make([]DayTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		out = append(out, DayTotal{Date: day, Total: totals[day.String()]})
	}
	return out
}

// Search matches the query case-insensitively against the description or
// the category display name, returning hits in ascending id order.
func (r *Report) Search(query string) []models.Expense {
	q := strings.ToLower(query)
	var out []models.Expense
	for _, e := range r.expenses {
		if q == "" ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(e.Category.String()), q) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FilterRecurring returns only template rows when only is set, otherwise
// every expense, in ascending id order.
func (r *Report) FilterRecurring(only bool) []models.Expense {
	var out []models.Expense
	for _, e := range r.expenses {
		if only && !e.IsRecurring {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count is the number of expenses in the snapshot.
func (r *Report) Count() int {
	return len(r.expenses)
}

// TotalBudget sums every configured monthly limit, for the monthly footer.
func (r *Report) TotalBudget() models.Money {
	var total models.Money
	for _, limit := range r.budgets {
		total += limit
	}
	return total
}
