package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cashflow-tui/cashflow/pkg/models"
)

// Run is the interactive event loop: read one command, dispatch it
// synchronously against the ledger, render, repeat. Every ledger
// operation, file writes included, completes before the next command is
// read, so there is never concurrent access to the collections.
func (a *App) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, a.Dashboard())
	fmt.Fprintln(out, dimStyle.Render(`type "help" for commands`))

	for {
		fmt.Fprintf(out, "[%s]> ", a.tab)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := a.dispatch(line, scanner, out); quit {
			return nil
		}
		if a.status != "" {
			fmt.Fprintln(out, a.status)
			a.status = ""
		}
	}
}

func (a *App) dispatch(line string, scanner *bufio.Scanner, out io.Writer) (quit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(out, helpText)
	case "1", "dashboard":
		a.tab = TabDashboard
		fmt.Fprintln(out, a.Dashboard())
	case "2", "expenses", "list":
		a.tab = TabExpenses
		fmt.Fprintln(out, a.Expenses())
	case "3", "monthly":
		a.tab = TabMonthly
		fmt.Fprintln(out, a.Monthly())
	case "tab":
		a.tab = a.tab.NextTab()
		a.renderTab(out)
	case "add":
		a.runForm(NewForm(models.DateOf(a.now())), scanner, out)
	case "edit":
		a.editCommand(arg, scanner, out)
	case "del", "delete":
		a.deleteCommand(arg, scanner, out)
	case "search":
		a.SetSearch(arg)
		a.tab = TabExpenses
		fmt.Fprintln(out, a.Expenses())
	case "recurring":
		only := a.ToggleRecurringFilter()
		a.tab = TabExpenses
		a.status = fmt.Sprintf("recurring-only filter: %v", only)
		fmt.Fprintln(out, a.Expenses())
	case "prev", "h":
		a.PrevMonth()
		a.tab = TabMonthly
		fmt.Fprintln(out, a.Monthly())
	case "next", "l":
		a.NextMonth()
		a.tab = TabMonthly
		fmt.Fprintln(out, a.Monthly())
	case "export":
		path, err := a.ledger.Export()
		if err != nil {
			a.status = redStyle.Render(fmt.Sprintf("Export failed: %v", err))
			break
		}
		a.status = "Exported to " + path
	case "import":
		if arg == "" {
			a.status = "usage: import <path>"
			break
		}
		count, warnings, err := a.ledger.Import(arg)
		if err != nil {
			a.status = redStyle.Render(fmt.Sprintf("Import failed: %v", err))
			break
		}
		a.status = fmt.Sprintf("Imported %d expenses from %s (%d rows skipped)", count, arg, len(warnings))
	case "budget":
		a.budgetCommand(arg, out)
	case "currency":
		a.currencyCommand(arg)
	default:
		a.status = fmt.Sprintf("unknown command %q, try \"help\"", cmd)
	}
	return false
}

func (a *App) renderTab(out io.Writer) {
	switch a.tab {
	case TabExpenses:
		fmt.Fprintln(out, a.Expenses())
	case TabMonthly:
		fmt.Fprintln(out, a.Monthly())
	default:
		fmt.Fprintln(out, a.Dashboard())
	}
}

// runForm walks the field cursor across the whole form, one prompt per
// field, then commits the draft. A lone "." cancels without touching the
// ledger.
func (a *App) runForm(form *Form, scanner *bufio.Scanner, out io.Writer) {
	fmt.Fprintln(out, dimStyle.Render(`enter values, blank keeps the shown value, "." cancels`))
	for {
		fmt.Fprintf(out, "  %s [%s]: ", form.Active.Label(), form.Current())
		if !scanner.Scan() {
			a.status = "Cancelled"
			return
		}
		input := scanner.Text()
		if strings.TrimSpace(input) == "." {
			a.status = "Cancelled"
			return
		}
		form.Set(input)
		if !form.Advance() {
			break
		}
	}

	draft, err := form.Draft()
	if err != nil {
		a.status = redStyle.Render(fmt.Sprintf("Invalid form data: %v", err))
		return
	}
	if form.EditingID != 0 {
		if err := a.ledger.Edit(form.EditingID, draft); err != nil {
			a.status = redStyle.Render(fmt.Sprintf("Edit failed: %v", err))
			return
		}
		a.status = "Expense updated"
		return
	}
	id, err := a.ledger.Add(draft)
	if err != nil {
		a.status = redStyle.Render(fmt.Sprintf("Add failed: %v", err))
		return
	}
	a.status = fmt.Sprintf("Expense added with id %d", id)
}

func (a *App) editCommand(arg string, scanner *bufio.Scanner, out io.Writer) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		a.status = "usage: edit <id>"
		return
	}
	e, ok := a.ledger.Expense(id)
	if !ok {
		a.status = fmt.Sprintf("expense %d not found", id)
		return
	}
	a.runForm(FormFromExpense(e), scanner, out)
}

func (a *App) deleteCommand(arg string, scanner *bufio.Scanner, out io.Writer) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		a.status = "usage: delete <id>"
		return
	}
	fmt.Fprintf(out, "delete expense %d? (y/N): ", id)
	if !scanner.Scan() || !isYes(scanner.Text()) {
		a.status = "Not deleted"
		return
	}
	if err := a.ledger.Delete(id); err != nil {
		a.status = fmt.Sprintf("expense %d not found", id)
		return
	}
	a.status = "Expense deleted"
}

func (a *App) budgetCommand(arg string, out io.Writer) {
	if arg == "" {
		for _, b := range a.ledger.Budgets() {
			fmt.Fprintf(out, "%-15s %s\n", b.Category.BudgetLabel(), a.cfg.Currency.Format(b.MonthlyLimit))
		}
		return
	}
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		a.status = "usage: budget <category> <monthly-limit>"
		return
	}
	limit, err := models.ParseLimit(fields[1])
	if err != nil {
		a.status = redStyle.Render(fmt.Sprintf("Invalid limit: %v", err))
		return
	}
	if err := a.ledger.SetBudget(models.ParseCategory(fields[0]), limit); err != nil {
		a.status = redStyle.Render(fmt.Sprintf("Budget not set: %v", err))
		return
	}
	a.status = fmt.Sprintf("Budget for %s set to %s", fields[0], a.cfg.Currency.Format(limit))
}

func (a *App) currencyCommand(arg string) {
	var err error
	switch arg {
	case "", "show":
		a.status = "Currency: " + a.cfg.Currency.DisplayName()
		return
	case "next":
		err = a.cfg.CycleCurrency(true)
	case "prev":
		err = a.cfg.CycleCurrency(false)
	default:
		err = a.cfg.SetCurrency(strings.ToUpper(arg))
	}
	if err != nil {
		a.status = redStyle.Render(fmt.Sprintf("Currency unchanged: %v", err))
		return
	}
	a.status = "Currency: " + a.cfg.Currency.DisplayName()
}

const helpText = `Commands:
  1 | dashboard        show the dashboard
  2 | expenses         show the expense list
  3 | monthly          show the monthly breakdown
  tab                  cycle tabs
  add                  add an expense (interactive form)
  edit <id>            edit an expense
  delete <id>          delete an expense (asks to confirm)
  search <text>        filter the list; bare "search" clears
  recurring            toggle recurring-only filter
  prev | next          move the monthly view by one month
  import <path>        append expenses from a CSV or XLS file
  export               write a timestamped CSV snapshot
  budget [<cat> <amt>] list budgets, or set a monthly limit
  currency [next|prev|<code>]
  quit
`
