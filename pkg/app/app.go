// Package app is the presentation-side collaborator: tab and form state,
// the interactive shell loop, and text rendering of the derived views. It
// only ever talks to the core through the Ledger API and the read-only
// report queries, never to the CSV files.
package app

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/cashflow-tui/cashflow/pkg/config"
	"github.com/cashflow-tui/cashflow/pkg/ledger"
)

// Tab identifies the active screen.
type Tab int

const (
	TabDashboard Tab = iota
	TabExpenses
	TabMonthly
)

func (t Tab) String() string {
	switch t {
	case TabExpenses:
		return "Expenses"
	case TabMonthly:
		return "Monthly"
	default:
		return "Dashboard"
	}
}

// NextTab cycles forward through the three tabs.
func (t Tab) NextTab() Tab {
	return (t + 1) % 3
}

type App struct {
	ledger *ledger.Ledger
	cfg    *config.Config
	logger *log.Logger
	now    func() time.Time

	tab               Tab
	searchQuery       string
	showRecurringOnly bool
	selectedYear      int
	selectedMonth     time.Month
	status            string
}

// Option adjusts an App at construction.
type Option func(*App)

// WithClock overrides the wall clock, which seeds the monthly view and the
// form's default date.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// New starts on the dashboard with the monthly view pointed at the current
// month.
func New(l *ledger.Ledger, cfg *config.Config, logger *log.Logger, opts ...Option) *App {
	a := &App{
		ledger: l,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.selectedYear = a.now().Year()
	a.selectedMonth = a.now().Month()
	return a
}

// PrevMonth moves the monthly view back one month, crossing year
// boundaries.
func (a *App) PrevMonth() {
	if a.selectedMonth == time.January {
		a.selectedMonth = time.December
		a.selectedYear--
		return
	}
	a.selectedMonth--
}

// NextMonth moves the monthly view forward one month.
func (a *App) NextMonth() {
	if a.selectedMonth == time.December {
		a.selectedMonth = time.January
		a.selectedYear++
		return
	}
	a.selectedMonth++
}

// ToggleRecurringFilter flips the recurring-only filter on the expense
// list.
func (a *App) ToggleRecurringFilter() bool {
	a.showRecurringOnly = !a.showRecurringOnly
	return a.showRecurringOnly
}

// SetSearch updates the expense list filter query.
func (a *App) SetSearch(query string) {
	a.searchQuery = query
}
