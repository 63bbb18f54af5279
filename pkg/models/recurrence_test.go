package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurrenceNext(t *testing.T) {
	cases := []struct {
		name string
		r    Recurrence
		from Date
		want Date
	}{
		{"daily", Daily, NewDate(2026, time.March, 14), NewDate(2026, time.March, 15)},
		{"daily month boundary", Daily, NewDate(2026, time.January, 31), NewDate(2026, time.February, 1)},
		{"weekly", Weekly, NewDate(2026, time.January, 1), NewDate(2026, time.January, 8)},
		{"monthly", Monthly, NewDate(2026, time.February, 1), NewDate(2026, time.March, 1)},
		{"monthly clamp to feb", Monthly, NewDate(2026, time.January, 31), NewDate(2026, time.February, 28)},
		{"monthly clamp leap year", Monthly, NewDate(2024, time.January, 31), NewDate(2024, time.February, 29)},
		{"monthly 30 to april", Monthly, NewDate(2026, time.March, 31), NewDate(2026, time.April, 30)},
		{"monthly december wraps", Monthly, NewDate(2026, time.December, 15), NewDate(2027, time.January, 15)},
		{"yearly", Yearly, NewDate(2026, time.June, 10), NewDate(2027, time.June, 10)},
		{"yearly feb29 clamps", Yearly, NewDate(2024, time.February, 29), NewDate(2025, time.February, 28)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Next(tc.from)
			assert.Equal(t, tc.want.String(), got.String())
		})
	}
}

func TestParseRecurrence(t *testing.T) {
	for _, r := range Recurrences() {
		got, err := ParseRecurrence(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRecurrence("")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceNone, got)

	got, err = ParseRecurrence("weekly")
	require.NoError(t, err)
	assert.Equal(t, Weekly, got)

	_, err = ParseRecurrence("fortnightly")
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-15", d.String())

	for _, bad := range []string{"2026-02-30", "15-02-2026", "2026/02/15", "yesterday", ""} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		ID:       1,
		Amount:   1250,
		Category: Category{Kind: CategoryFood},
		Date:     NewDate(2026, time.February, 15),
	}
	assert.NoError(t, good.Validate())

	bad := good
	bad.Amount = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAmount)

	bad = good
	bad.Recurrence = Monthly
	assert.ErrorIs(t, bad.Validate(), ErrRecurrenceMismatch)

	bad = good
	bad.IsRecurring = true
	assert.ErrorIs(t, bad.Validate(), ErrRecurrenceMismatch)

	recurring := good
	recurring.IsRecurring = true
	recurring.Recurrence = Weekly
	assert.NoError(t, recurring.Validate())
}

func TestNextID(t *testing.T) {
	assert.Equal(t, uint64(1), NextID(nil))
	assert.Equal(t, uint64(8), NextID([]Expense{{ID: 3}, {ID: 7}, {ID: 1}}))
}
