package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/pkg/errors"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

// ReadImport parses an external file of expense rows. CSV is the documented
// interchange format; legacy .xls workbooks with the same column layout are
// accepted as well. Ids in the file are ignored by the caller, which
// reassigns fresh ones before appending.
func (s *Store) ReadImport(path string) ([]models.Expense, []ParseWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read import file %s", path)
	}

	var (
		expenses []models.Expense
		warnings []ParseWarning
	)
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		expenses, warnings, err = decodeExpensesXLS(data)
	} else {
		expenses, warnings, err = decodeExpenses(bytes.NewReader(data))
	}
	if err != nil {
		return nil, warnings, errors.Wrapf(err, "parse import file %s", path)
	}
	for _, w := range warnings {
		s.logger.Warn("skipped import row", "file", filepath.Base(path), "line", w.Line, "err", w.Err)
	}
	return expenses, warnings, nil
}

// decodeExpensesXLS walks every cell row of the first sheet and feeds rows
// through the same record parser the CSV path uses.
func decodeExpensesXLS(data []byte) ([]models.Expense, []ParseWarning, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, nil, errors.Wrap(err, "open xls workbook")
	}

	rows := workbook.ReadAllCells(10000)
	if len(rows) == 0 {
		return nil, nil, errors.New("no data found in sheet")
	}

	var (
		expenses []models.Expense
		warnings []ParseWarning
	)
	for i, row := range rows {
		line := i + 1
		if line == 1 && isHeader(row, expenseHeader) {
			continue
		}
		if len(row) == 0 {
			continue
		}
		e, err := expenseFromRecord(row)
		if err != nil {
			warnings = append(warnings, ParseWarning{Line: line, Err: err})
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, warnings, nil
}
