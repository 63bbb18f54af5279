package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

var (
	expenseHeader = []string{"id", "amount", "category", "description", "date", "is_recurring", "recurrence"}
	budgetHeader  = []string{"category", "monthly_limit"}
)

// ParseWarning records a row that was skipped during a load or import. Bad
// rows never abort the whole file; callers report the warnings and keep the
// rows that did parse.
type ParseWarning struct {
	Line int
	Err  error
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("line %d: %v", w.Line, w.Err)
}

func encodeExpenses(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(expenseHeader); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		rec := []string{
			strconv.FormatUint(e.ID, 10),
			e.Amount.String(),
			e.Category.String(),
			e.Description,
			e.Date.String(),
			strconv.FormatBool(e.IsRecurring),
			string(e.Recurrence),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func decodeExpenses(r io.Reader) ([]models.Expense, []ParseWarning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		expenses []models.Expense
		warnings []ParseWarning
		line     int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: line, Err: err})
			continue
		}
		if line == 1 && isHeader(record, expenseHeader) {
			continue
		}
		e, err := expenseFromRecord(record)
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: line, Err: err})
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, warnings, nil
}

func expenseFromRecord(record []string) (models.Expense, error) {
	if len(record) != len(expenseHeader) {
		return models.Expense{}, fmt.Errorf("expected %d columns, got %d", len(expenseHeader), len(record))
	}
	id, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil || id == 0 {
		return models.Expense{}, fmt.Errorf("bad id %q", record[0])
	}
	amount, err := models.ParseMoney(record[1])
	if err != nil {
		return models.Expense{}, fmt.Errorf("bad amount %q: %w", record[1], err)
	}
	date, err := models.ParseDate(record[4])
	if err != nil {
		return models.Expense{}, fmt.Errorf("bad date %q: %w", record[4], err)
	}
	isRecurring, err := strconv.ParseBool(record[5])
	if err != nil {
		return models.Expense{}, fmt.Errorf("bad is_recurring %q", record[5])
	}
	recurrence, err := models.ParseRecurrence(record[6])
	if err != nil {
		return models.Expense{}, fmt.Errorf("bad recurrence %q: %w", record[6], err)
	}
	if !isRecurring {
		recurrence = models.RecurrenceNone
	}
	if isRecurring && recurrence == models.RecurrenceNone {
		return models.Expense{}, models.ErrRecurrenceMismatch
	}
	return models.Expense{
		ID:          id,
		Amount:      amount,
		Category:    models.ParseCategory(record[2]),
		Description: record[3],
		Date:        date,
		IsRecurring: isRecurring,
		Recurrence:  recurrence,
	}, nil
}

func encodeBudgets(budgets []models.Budget) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(budgetHeader); err != nil {
		return nil, err
	}
	for _, b := range budgets {
		if err := w.Write([]string{b.Category.BudgetLabel(), b.MonthlyLimit.String()}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func decodeBudgets(r io.Reader) ([]models.Budget, []ParseWarning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var (
		budgets  []models.Budget
		warnings []ParseWarning
		line     int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: line, Err: err})
			continue
		}
		if line == 1 && isHeader(record, budgetHeader) {
			continue
		}
		if len(record) != len(budgetHeader) {
			warnings = append(warnings, ParseWarning{
				Line: line,
				Err:  fmt.Errorf("expected %d columns, got %d", len(budgetHeader), len(record)),
			})
			continue
		}
		limit, err := models.ParseLimit(record[1])
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: line, Err: fmt.Errorf("bad monthly_limit %q: %w", record[1], err)})
			continue
		}
		budgets = append(budgets, models.Budget{
			Category:     models.ParseCategory(record[0]),
			MonthlyLimit: limit,
		})
	}
	return budgets, warnings, nil
}

func isHeader(record, header []string) bool {
	if len(record) != len(header) {
		return false
	}
	for i := range header {
		if record[i] != header[i] {
			return false
		}
	}
	return true
}
