package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

func TestFormFieldCursorCycles(t *testing.T) {
	f := FieldAmount
	seen := []FormField{f}
	for {
		f = f.Next()
		if f == FieldAmount {
			break
		}
		seen = append(seen, f)
	}
	assert.Len(t, seen, int(fieldCount), "cursor visits every field exactly once per pass")

	assert.Equal(t, FieldRecurrence, FieldAmount.Prev(), "backward wraps to the last field")
	assert.Equal(t, FieldAmount, FieldRecurrence.Next())
}

func TestNewFormDefaults(t *testing.T) {
	today := models.NewDate(2026, time.February, 15)
	f := NewForm(today)
	assert.Equal(t, FieldAmount, f.Active)
	assert.Equal(t, "2026-02-15", f.Values[FieldDate])
	assert.Equal(t, uint64(0), f.EditingID)
}

func TestFormSetKeepsValueOnBlankInput(t *testing.T) {
	f := NewForm(models.NewDate(2026, time.February, 15))
	f.Active = FieldDate
	f.Set("")
	assert.Equal(t, "2026-02-15", f.Current(), "blank input keeps the pending value")
	f.Set("2026-03-01")
	assert.Equal(t, "2026-03-01", f.Current())
}

func TestFormDraft(t *testing.T) {
	f := NewForm(models.NewDate(2026, time.February, 15))
	f.Values[FieldAmount] = "12.50"
	f.Values[FieldCategory] = "food"
	f.Values[FieldDescription] = "lunch"

	draft, err := f.Draft()
	require.NoError(t, err)
	assert.Equal(t, models.Money(1250), draft.Amount)
	assert.Equal(t, models.CategoryFood, draft.Category.Kind)
	assert.Equal(t, "lunch", draft.Description)
	assert.False(t, draft.IsRecurring)
	assert.Equal(t, models.RecurrenceNone, draft.Recurrence)
}

func TestFormDraftRecurringDefaultsToDaily(t *testing.T) {
	f := NewForm(models.NewDate(2026, time.February, 15))
	f.Values[FieldAmount] = "5"
	f.Values[FieldRecurring] = "y"

	draft, err := f.Draft()
	require.NoError(t, err)
	assert.True(t, draft.IsRecurring)
	assert.Equal(t, models.Daily, draft.Recurrence)
}

func TestFormDraftRejectsBadInput(t *testing.T) {
	f := NewForm(models.NewDate(2026, time.February, 15))
	f.Values[FieldAmount] = "zero"
	_, err := f.Draft()
	assert.ErrorIs(t, err, models.ErrInvalidAmount)

	f.Values[FieldAmount] = "5"
	f.Values[FieldDate] = "2026-02-30"
	_, err = f.Draft()
	assert.ErrorIs(t, err, models.ErrInvalidDate)

	f.Values[FieldDate] = "2026-02-15"
	f.Values[FieldRecurring] = "y"
	f.Values[FieldRecurrence] = "sometimes"
	_, err = f.Draft()
	assert.ErrorIs(t, err, models.ErrInvalidRecurrence)
}

func TestFormFromExpensePrefills(t *testing.T) {
	e := models.Expense{
		ID:          7,
		Amount:      5000,
		Category:    models.Category{Kind: models.CategoryTransport},
		Description: "monthly pass",
		Date:        models.NewDate(2026, time.February, 1),
		IsRecurring: true,
		Recurrence:  models.Monthly,
	}
	f := FormFromExpense(e)
	assert.Equal(t, uint64(7), f.EditingID)
	assert.Equal(t, "50.00", f.Values[FieldAmount])
	assert.Equal(t, "Transport", f.Values[FieldCategory])
	assert.Equal(t, "y", f.Values[FieldRecurring])
	assert.Equal(t, "Monthly", f.Values[FieldRecurrence])

	draft, err := f.Draft()
	require.NoError(t, err)
	assert.Equal(t, e.Amount, draft.Amount)
	assert.Equal(t, e.Recurrence, draft.Recurrence)
}
