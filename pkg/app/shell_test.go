package app

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashflow-tui/cashflow/pkg/config"
	"github.com/cashflow-tui/cashflow/pkg/ledger"
	"github.com/cashflow-tui/cashflow/pkg/models"
	"github.com/cashflow-tui/cashflow/pkg/storage"
)

func newTestApp(t *testing.T) (*App, *ledger.Ledger) {
	t.Helper()
	logger := log.New(io.Discard)
	dir := t.TempDir()
	store, err := storage.New(dir, logger)
	require.NoError(t, err)
	l, _ := ledger.Open(store, logger)
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	clock := func() time.Time {
		return time.Date(2026, time.May, 20, 12, 0, 0, 0, time.UTC)
	}
	return New(l, cfg, logger, WithClock(clock)), l
}

// runScript feeds newline-separated commands through the shell loop.
func runScript(t *testing.T, a *App, script string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, a.Run(strings.NewReader(script), &out))
	return out.String()
}

func TestShellAddListDelete(t *testing.T) {
	a, l := newTestApp(t)

	// add: amount, category, description, date, recurring, recurrence.
	script := strings.Join([]string{
		"add",
		"12.50",
		"Food",
		"lunch",
		"2026-05-18",
		"n",
		"",
		"2",
		"del 1",
		"y",
		"quit",
	}, "\n") + "\n"

	output := runScript(t, a, script)
	assert.Contains(t, output, "Expense added with id 1")
	assert.Contains(t, output, "lunch")
	assert.Contains(t, output, "Expense deleted")
	assert.Empty(t, l.Expenses())
}

func TestShellFormCancelLeavesLedgerUnchanged(t *testing.T) {
	a, l := newTestApp(t)

	output := runScript(t, a, "add\n12.50\n.\nquit\n")
	assert.Contains(t, output, "Cancelled")
	assert.Empty(t, l.Expenses())
}

func TestShellEditPreservesID(t *testing.T) {
	a, l := newTestApp(t)
	id, err := l.Add(ledger.Draft{
		Amount:   1000,
		Category: models.Category{Kind: models.CategoryFood},
		Date:     models.NewDate(2026, time.May, 1),
	})
	require.NoError(t, err)

	// Blank lines keep every prefilled value except the amount.
	script := "edit 1\n99.00\n\n\n\n\n\nquit\n"
	output := runScript(t, a, script)
	assert.Contains(t, output, "Expense updated")

	e, ok := l.Expense(id)
	require.True(t, ok)
	assert.Equal(t, models.Money(9900), e.Amount)
}

func TestShellSearchAndMonthly(t *testing.T) {
	a, l := newTestApp(t)
	_, err := l.Add(ledger.Draft{
		Amount:      1000,
		Category:    models.Category{Kind: models.CategoryFood},
		Description: "groceries",
		Date:        models.NewDate(2026, time.May, 2),
	})
	require.NoError(t, err)
	_, err = l.Add(ledger.Draft{
		Amount:      2000,
		Category:    models.Category{Kind: models.CategoryRent},
		Description: "may rent",
		Date:        models.NewDate(2026, time.May, 3),
	})
	require.NoError(t, err)

	output := runScript(t, a, "search groceries\nquit\n")
	assert.Contains(t, output, "groceries")
	assert.NotContains(t, output, "may rent")

	output = runScript(t, a, "budget Rent 300.00\n3\nquit\n")
	assert.Contains(t, output, "Budget for Rent set to $300.00")
	assert.Contains(t, output, "May 2026")
}

func TestMonthlyFoldsOtherVariantsIntoOneGauge(t *testing.T) {
	a, l := newTestApp(t)
	_, err := l.Add(ledger.Draft{
		Amount:      6000,
		Category:    models.Category{Kind: models.CategoryOther, Other: "beer"},
		Description: "six packs",
		Date:        models.NewDate(2026, time.May, 5),
	})
	require.NoError(t, err)
	_, err = l.Add(ledger.Draft{
		Amount:      5000,
		Category:    models.Category{Kind: models.CategoryOther, Other: "wine"},
		Description: "bottles",
		Date:        models.NewDate(2026, time.May, 6),
	})
	require.NoError(t, err)
	require.NoError(t, l.SetBudget(models.Category{Kind: models.CategoryOther}, 10000))

	// The budget applies to the folded Other spend, so the view shows one
	// row whose amount matches the tier it reports.
	output := a.Monthly()
	assert.Contains(t, output, "$110.00 / $100.00 (over)")
	assert.NotContains(t, output, "Other(beer)")
	assert.NotContains(t, output, "$60.00")
	assert.Equal(t, 1, strings.Count(output, "Other"))
}

func TestShellUnknownCommand(t *testing.T) {
	a, _ := newTestApp(t)
	output := runScript(t, a, "frobnicate\nquit\n")
	assert.Contains(t, output, `unknown command "frobnicate"`)
}

func TestShellCurrencyCycle(t *testing.T) {
	a, _ := newTestApp(t)
	output := runScript(t, a, "currency next\nquit\n")
	assert.Contains(t, output, "EUR")
	assert.Equal(t, "EUR", a.cfg.Currency.Code)
}
