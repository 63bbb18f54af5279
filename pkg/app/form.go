package app

import (
	"strings"

	"github.com/cashflow-tui/cashflow/pkg/ledger"
	"github.com/cashflow-tui/cashflow/pkg/models"
)

// FormField is the cursor position inside the add/edit form.
type FormField int

const (
	FieldAmount FormField = iota
	FieldCategory
	FieldDescription
	FieldDate
	FieldRecurring
	FieldRecurrence
	fieldCount
)

func (f FormField) Label() string {
	switch f {
	case FieldAmount:
		return "Amount"
	case FieldCategory:
		return "Category"
	case FieldDescription:
		return "Description"
	case FieldDate:
		return "Date (YYYY-MM-DD)"
	case FieldRecurring:
		return "Recurring (y/n)"
	case FieldRecurrence:
		return "Recurrence (Daily/Weekly/Monthly/Yearly)"
	default:
		return ""
	}
}

// Next moves the cursor forward, wrapping to the first field.
func (f FormField) Next() FormField {
	return (f + 1) % fieldCount
}

// Prev moves the cursor backward, wrapping to the last field.
func (f FormField) Prev() FormField {
	return (f + fieldCount - 1) % fieldCount
}

// Form is the modal add/edit state: an explicit field cursor over pending
// draft values. Nothing touches the ledger until the draft parses.
type Form struct {
	Active    FormField
	Values    [fieldCount]string
	EditingID uint64 // zero when adding
}

// NewForm starts a blank draft with the date prefilled to today.
func NewForm(today models.Date) *Form {
	f := &Form{}
	f.Values[FieldDate] = today.String()
	f.Values[FieldRecurring] = "n"
	return f
}

// FormFromExpense prefills every field from an existing row for editing.
func FormFromExpense(e models.Expense) *Form {
	f := &Form{EditingID: e.ID}
	f.Values[FieldAmount] = e.Amount.String()
	f.Values[FieldCategory] = e.Category.String()
	f.Values[FieldDescription] = e.Description
	f.Values[FieldDate] = e.Date.String()
	if e.IsRecurring {
		f.Values[FieldRecurring] = "y"
		f.Values[FieldRecurrence] = string(e.Recurrence)
	} else {
		f.Values[FieldRecurring] = "n"
	}
	return f
}

// Current returns the pending value under the cursor.
func (f *Form) Current() string {
	return f.Values[f.Active]
}

// Set stores input for the active field. Empty input keeps the pending
// value, so editing can skip fields that should not change.
func (f *Form) Set(input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	f.Values[f.Active] = input
}

// Advance moves the cursor to the next field and reports whether the form
// still has fields left this pass.
func (f *Form) Advance() bool {
	f.Active = f.Active.Next()
	return f.Active != FieldAmount
}

// Draft validates the pending values into a ledger draft. The recurrence
// is kept exactly when the recurring toggle is on; a recurring draft with
// no cadence chosen defaults to Daily, the first form option.
func (f *Form) Draft() (ledger.Draft, error) {
	amount, err := models.ParseMoney(f.Values[FieldAmount])
	if err != nil {
		return ledger.Draft{}, err
	}
	date, err := models.ParseDate(f.Values[FieldDate])
	if err != nil {
		return ledger.Draft{}, err
	}

	recurring := isYes(f.Values[FieldRecurring])
	recurrence := models.RecurrenceNone
	if recurring {
		recurrence, err = models.ParseRecurrence(f.Values[FieldRecurrence])
		if err != nil {
			return ledger.Draft{}, err
		}
		if recurrence == models.RecurrenceNone {
			recurrence = models.Daily
		}
	}

	return ledger.Draft{
		Amount:      amount,
		Category:    models.ParseCategory(f.Values[FieldCategory]),
		Description: f.Values[FieldDescription],
		Date:        date,
		IsRecurring: recurring,
		Recurrence:  recurrence,
	}, nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	default:
		return false
	}
}
