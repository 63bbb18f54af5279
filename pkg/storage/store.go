// Package storage owns the on-disk CSV formats. Every save is a whole-file
// rewrite through a temp file and rename, so a reader never observes a
// partially written collection.
package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

const (
	expensesFile = "expenses.csv"
	budgetsFile  = "budgets.csv"
	exportFormat = "20060102_150405"
)

type Store struct {
	dir    string
	logger *log.Logger
	now    func() time.Time
}

// Option adjusts a Store at construction.
type Option func(*Store)

// WithClock overrides the wall clock used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New opens a store rooted at dir, creating the directory if absent. A
// directory that cannot be created is the one startup error the process
// treats as fatal.
func New(dir string, logger *log.Logger, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data directory %s", dir)
	}
	s := &Store{dir: dir, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// LoadExpenses reads expenses.csv. A missing file is an empty ledger, not
// an error. Malformed rows are skipped and reported as warnings.
func (s *Store) LoadExpenses() ([]models.Expense, []ParseWarning, error) {
	path := filepath.Join(s.dir, expensesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read %s", path)
	}
	expenses, warnings, err := decodeExpenses(bytes.NewReader(data))
	if err != nil {
		return nil, warnings, errors.Wrapf(err, "decode %s", path)
	}
	for _, w := range warnings {
		s.logger.Warn("skipped expense row", "file", expensesFile, "line", w.Line, "err", w.Err)
	}
	return expenses, warnings, nil
}

// SaveExpenses rewrites expenses.csv with the full collection.
func (s *Store) SaveExpenses(expenses []models.Expense) error {
	data, err := encodeExpenses(expenses)
	if err != nil {
		return errors.Wrap(err, "encode expenses")
	}
	return s.writeFileAtomic(filepath.Join(s.dir, expensesFile), data)
}

// LoadBudgets reads budgets.csv, keeping the last row for each category
// label when duplicates appear.
func (s *Store) LoadBudgets() ([]models.Budget, []ParseWarning, error) {
	path := filepath.Join(s.dir, budgetsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read %s", path)
	}
	budgets, warnings, err := decodeBudgets(bytes.NewReader(data))
	if err != nil {
		return nil, warnings, errors.Wrapf(err, "decode %s", path)
	}
	for _, w := range warnings {
		s.logger.Warn("skipped budget row", "file", budgetsFile, "line", w.Line, "err", w.Err)
	}
	return dedupeBudgets(budgets), warnings, nil
}

// dedupeBudgets enforces one budget per category label, last write wins.
func dedupeBudgets(budgets []models.Budget) []models.Budget {
	byLabel := make(map[string]int)
	out := make([]models.Budget, 0, len(budgets))
	for _, b := range budgets {
		label := b.Category.BudgetLabel()
		if i, ok := byLabel[label]; ok {
			out[i] = b
			continue
		}
		byLabel[label] = len(out)
		out = append(out, b)
	}
	return out
}

// SaveBudgets rewrites budgets.csv with the full collection.
func (s *Store) SaveBudgets(budgets []models.Budget) error {
	data, err := encodeBudgets(budgets)
	if err != nil {
		return errors.Wrap(err, "encode budgets")
	}
	return s.writeFileAtomic(filepath.Join(s.dir, budgetsFile), data)
}

// Export writes a full snapshot to export_<timestamp>.csv in the data dir.
// The name carries second precision and an existing file is never
// overwritten.
func (s *Store) Export(expenses []models.Expense) (string, error) {
	data, err := encodeExpenses(expenses)
	if err != nil {
		return "", errors.Wrap(err, "encode expenses")
	}
	name := "export_" + s.now().Format(exportFormat) + ".csv"
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrapf(err, "create export %s", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "write export %s", path)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "close export %s", path)
	}
	s.logger.Info("exported expenses", "path", path, "rows", len(expenses))
	return path, nil
}

func (s *Store) writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".cashflow-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}
