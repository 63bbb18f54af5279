package main

import (
	"strings"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

type filters struct {
	search    string
	category  string
	from      string
	to        string
	recurring bool
	minAmount float64
	maxAmount float64
}

var listFilters filters

func (f *filters) matches(e models.Expense) (bool, error) {
	if f.from != "" {
		from, err := models.ParseDate(f.from)
		if err != nil {
			return false, err
		}
		if e.Date.Before(from.Time) {
			return false, nil
		}
	}
	if f.to != "" {
		to, err := models.ParseDate(f.to)
		if err != nil {
			return false, err
		}
		if e.Date.After(to.Time) {
			return false, nil
		}
	}
	if f.minAmount != 0 && e.Amount.Float() < f.minAmount {
		return false, nil
	}
	if f.maxAmount != 0 && e.Amount.Float() > f.maxAmount {
		return false, nil
	}
	if f.recurring && !e.IsRecurring {
		return false, nil
	}
	if f.category != "" && !e.Category.Equal(models.ParseCategory(f.category)) {
		return false, nil
	}
	if f.search != "" {
		q := strings.ToLower(f.search)
		if !strings.Contains(strings.ToLower(e.Description), q) &&
			!strings.Contains(strings.ToLower(e.Category.String()), q) {
			return false, nil
		}
	}
	return true, nil
}

func applyFilters(expenses []models.Expense) ([]models.Expense, error) {
	out := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		ok, err := listFilters.matches(e)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func init() {
	listCmd.Flags().StringVar(&listFilters.search, "search", "", "Match description or category, case-insensitive")
	listCmd.Flags().StringVar(&listFilters.category, "category", "", "Only this category")
	listCmd.Flags().StringVar(&listFilters.from, "from", "", "Earliest date to include (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listFilters.to, "to", "", "Latest date to include (YYYY-MM-DD)")
	listCmd.Flags().BoolVar(&listFilters.recurring, "recurring", false, "Only recurring templates")
	listCmd.Flags().Float64Var(&listFilters.minAmount, "min-amount", 0, "Minimum amount")
	listCmd.Flags().Float64Var(&listFilters.maxAmount, "max-amount", 0, "Maximum amount")
}
