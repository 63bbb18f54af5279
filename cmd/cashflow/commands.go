package main

import (
	"fmt"
	"os"
	"time"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		expenses, err := applyFilters(env.ledger.Expenses())
		if err != nil {
			return err
		}
		cur := env.cfg.Currency
		for _, e := range expenses {
			rec := ""
			if e.IsRecurring {
				rec = string(e.Recurrence)
			}
			fmt.Fprintf(os.Stdout, "%-5d %s  %-12s %-30s %10s  %s\n",
				e.ID, e.Date, e.Category, e.Description, cur.Format(e.Amount), rec)
		}
		fmt.Fprintf(os.Stdout, "%d expenses\n", len(expenses))
		return nil
	},
}

var (
	statsMonth string
	statsYear  int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Totals and category breakdown",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		r := env.ledger.Report()
		cur := env.cfg.Currency

		if statsYear != 0 {
			fmt.Fprintf(os.Stdout, "Total for %d: %s\n", statsYear, cur.Format(r.YearlyTotal(statsYear)))
			return nil
		}

		year, month := time.Now().Year(), time.Now().Month()
		if statsMonth != "" {
			t, err := time.Parse("2006-01", statsMonth)
			if err != nil {
				return fmt.Errorf("invalid --month %q, want YYYY-MM", statsMonth)
			}
			year, month = t.Year(), t.Month()
		}
		fmt.Fprintf(os.Stdout, "%s %d: %s\n", month, year, cur.Format(r.MonthlyTotal(year, month)))
		for _, c := range r.CategoryBreakdown(year, month) {
			fmt.Fprintf(os.Stdout, "  %-14s %s\n", c.Category, cur.Format(c.Amount))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import expenses from a CSV or XLS file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		count, warnings, err := env.ledger.Import(args[0])
		if err != nil {
			return err
		}
		for _, w := range warnings {
			env.logger.Warn("skipped row", "line", w.Line, "err", w.Err)
		}
		fmt.Fprintf(os.Stdout, "Imported %d expenses, skipped %d rows\n", count, len(warnings))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all expenses to a timestamped CSV in the data directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		path, err := env.ledger.Export()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Exported to", path)
		return nil
	},
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage monthly category budgets",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set the monthly limit for a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		category := models.ParseCategory(args[0])
		limit, err := models.ParseLimit(args[1])
		if err != nil {
			return err
		}
		if err := env.ledger.SetBudget(category, limit); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Budget for %s set to %s\n", category.BudgetLabel(), env.cfg.Currency.Format(limit))
		return nil
	},
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show budgets against the current month's spend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		r := env.ledger.Report()
		cur := env.cfg.Currency
		year, month := time.Now().Year(), time.Now().Month()
		for _, b := range env.ledger.Budgets() {
			status := r.BudgetStatus(b.Category, year, month)
			fmt.Fprintf(os.Stdout, "%-14s %10s / %-10s (%s)\n",
				status.Category, cur.Format(status.Spent), cur.Format(status.Limit), status.Tier)
		}
		return nil
	},
}

var currencyCmd = &cobra.Command{
	Use:   "currency [next|prev|<code>]",
	Short: "Show or change the display currency",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			switch args[0] {
			case "next":
				err = env.cfg.CycleCurrency(true)
			case "prev":
				err = env.cfg.CycleCurrency(false)
			default:
				err = env.cfg.SetCurrency(args[0])
			}
			if err != nil {
				return err
			}
		}
		fmt.Fprintln(os.Stdout, env.cfg.Currency.DisplayName())
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:    "dump",
	Short:  "Pretty-print the full ledger state",
	Hidden: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		pp.Println(map[string]any{
			"currency": env.cfg.Currency.Code,
			"expenses": env.ledger.Expenses(),
			"budgets":  env.ledger.Budgets(),
		})
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsMonth, "month", "", "Month to summarize (YYYY-MM, default current)")
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "Summarize a whole year instead of a month")

	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetListCmd)
}
