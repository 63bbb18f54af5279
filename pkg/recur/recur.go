// Package recur materializes concrete expense rows from recurring
// templates. Expansion is pure over the collection it is given: callers
// decide when "today" is and what to do with the generated rows.
package recur

import (
	"github.com/cashflow-tui/cashflow/pkg/models"
)

// lineageKey identifies the rows belonging to one template: the anchor and
// every occurrence share category and description, and a date appears at
// most once per lineage.
type lineageKey struct {
	category    string
	description string
	date        string
}

// Expand walks every recurring template forward from its anchor date and
// returns the occurrences that are due on or before today and not already
// present. Occurrences are non-recurring clones of the template with fresh
// ids. Running Expand twice with the same today yields nothing the second
// time, and a template dated in the future yields nothing at all.
func Expand(expenses []models.Expense, today models.Date) []models.Expense {
	seen := make(map[lineageKey]struct{}, len(expenses))
	for _, e := range expenses {
		seen[keyOf(e)] = struct{}{}
	}

	nextID := models.NextID(expenses)
	var generated []models.Expense

	for _, template := range expenses {
		if !template.IsRecurring || template.Recurrence == models.RecurrenceNone {
			continue
		}
		for next := template.Recurrence.Next(template.Date); !next.After(today.Time); next = template.Recurrence.Next(next) {
			occurrence := models.Expense{
				ID:          nextID,
				Amount:      template.Amount,
				Category:    template.Category,
				Description: template.Description,
				Date:        next,
			}
			key := keyOf(occurrence)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			generated = append(generated, occurrence)
			nextID++
		}
	}
	return generated
}

func keyOf(e models.Expense) lineageKey {
	return lineageKey{
		category:    e.Category.String(),
		description: e.Description,
		date:        e.Date.String(),
	}
}
