package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

func monthlyTemplate() models.Expense {
	return models.Expense{
		ID:          1,
		Amount:      5000,
		Category:    models.Category{Kind: models.CategoryTransport},
		Description: "monthly pass",
		Date:        models.NewDate(2026, time.February, 1),
		IsRecurring: true,
		Recurrence:  models.Monthly,
	}
}

func TestExpandMonthlyTemplateInclusiveOfToday(t *testing.T) {
	expenses := []models.Expense{monthlyTemplate()}
	today := models.NewDate(2026, time.May, 1)

	generated := Expand(expenses, today)

	require.Len(t, generated, 3)
	assert.Equal(t, "2026-03-01", generated[0].Date.String())
	assert.Equal(t, "2026-04-01", generated[1].Date.String())
	assert.Equal(t, "2026-05-01", generated[2].Date.String())

	for i, occ := range generated {
		assert.Equal(t, uint64(2+i), occ.ID)
		assert.False(t, occ.IsRecurring)
		assert.Equal(t, models.RecurrenceNone, occ.Recurrence)
		assert.Equal(t, models.Money(5000), occ.Amount)
		assert.Equal(t, "monthly pass", occ.Description)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	expenses := []models.Expense{monthlyTemplate()}
	today := models.NewDate(2026, time.May, 1)

	first := Expand(expenses, today)
	require.NotEmpty(t, first)

	again := Expand(append(expenses, first...), today)
	assert.Empty(t, again)
}

func TestExpandFutureTemplateYieldsNothing(t *testing.T) {
	template := monthlyTemplate()
	template.Date = models.NewDate(2026, time.December, 1)

	generated := Expand([]models.Expense{template}, models.NewDate(2026, time.May, 1))
	assert.Empty(t, generated)
}

func TestExpandFillsGapsOnly(t *testing.T) {
	template := monthlyTemplate()
	existing := models.Expense{
		ID:          2,
		Amount:      5000,
		Category:    template.Category,
		Description: template.Description,
		Date:        models.NewDate(2026, time.March, 1),
	}

	generated := Expand([]models.Expense{template, existing}, models.NewDate(2026, time.April, 10))
	require.Len(t, generated, 1)
	assert.Equal(t, "2026-04-01", generated[0].Date.String())
	assert.Equal(t, uint64(3), generated[0].ID)
}

func TestExpandWeekly(t *testing.T) {
	template := models.Expense{
		ID:          1,
		Amount:      3000,
		Category:    models.Category{Kind: models.CategoryFood},
		Description: "lunch",
		Date:        models.NewDate(2026, time.January, 1),
		IsRecurring: true,
		Recurrence:  models.Weekly,
	}

	generated := Expand([]models.Expense{template}, models.NewDate(2026, time.January, 22))
	require.Len(t, generated, 3)
	assert.Equal(t, "2026-01-08", generated[0].Date.String())
	assert.Equal(t, "2026-01-15", generated[1].Date.String())
	assert.Equal(t, "2026-01-22", generated[2].Date.String())
}

func TestExpandMonthlyClampsShortMonths(t *testing.T) {
	template := models.Expense{
		ID:          1,
		Amount:      1000,
		Category:    models.Category{Kind: models.CategorySubscriptions},
		Description: "streaming",
		Date:        models.NewDate(2026, time.January, 31),
		IsRecurring: true,
		Recurrence:  models.Monthly,
	}

	generated := Expand([]models.Expense{template}, models.NewDate(2026, time.April, 30))
	require.Len(t, generated, 3)
	assert.Equal(t, "2026-02-28", generated[0].Date.String())
	assert.Equal(t, "2026-03-28", generated[1].Date.String())
	assert.Equal(t, "2026-04-28", generated[2].Date.String())
}

func TestExpandSeparatesLineagesByDescription(t *testing.T) {
	a := monthlyTemplate()
	b := monthlyTemplate()
	b.ID = 2
	b.Description = "second pass"

	generated := Expand([]models.Expense{a, b}, models.NewDate(2026, time.March, 1))
	require.Len(t, generated, 2)
	assert.Equal(t, "monthly pass", generated[0].Description)
	assert.Equal(t, "second pass", generated[1].Description)
	assert.Equal(t, "2026-03-01", generated[0].Date.String())
	assert.Equal(t, "2026-03-01", generated[1].Date.String())
}
