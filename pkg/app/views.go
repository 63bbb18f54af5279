package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cashflow-tui/cashflow/pkg/models"
	"github.com/cashflow-tui/cashflow/pkg/report"
)

const (
	barWidth       = 30
	sparklineDays  = 30
	sparklineRunes = "▁▂▃▄▅▆▇█"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginRight(1)

	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func card(label string, value string, style lipgloss.Style) string {
	return cardStyle.Render(dimStyle.Render(label) + "\n" + style.Render(value))
}

// Dashboard renders the summary cards, the current month's category bars
// and the 30-day sparkline.
func (a *App) Dashboard() string {
	rep := a.ledger.Report()
	now := a.now()
	today := models.DateOf(now)
	cur := a.cfg.Currency

	var b strings.Builder
	b.WriteString(titleStyle.Render("Dashboard") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("This Month", cur.Format(rep.MonthlyTotal(now.Year(), now.Month())), greenStyle),
		card("This Year", cur.Format(rep.YearlyTotal(now.Year())), yellowStyle),
		card("Total Expenses", fmt.Sprintf("%d", rep.Count()), cyanStyle),
	))
	b.WriteString("\n")

	breakdown := rep.CategoryBreakdown(now.Year(), now.Month())
	if len(breakdown) > 0 {
		b.WriteString(titleStyle.Render("Spending by Category") + "\n")
		max := breakdown[0].Amount
		for _, entry := range breakdown {
			width := 1
			if max > 0 {
				width = int(int64(entry.Amount) * barWidth / int64(max))
				if width < 1 {
					width = 1
				}
			}
			bar := greenStyle.Render(strings.Repeat("█", width))
			b.WriteString(fmt.Sprintf("%-15s %s %s\n", entry.Category, bar, cur.Format(entry.Amount)))
		}
	}

	b.WriteString(titleStyle.Render("Last 30 Days") + "\n")
	b.WriteString(sparkline(rep.DailySparkline(sparklineDays, today)) + "\n")
	return b.String()
}

// sparkline scales daily totals onto eight block glyphs. Zero days render
// as the lowest block so no day is skipped.
func sparkline(points []report.DayTotal) string {
	var max models.Money
	for _, p := range points {
		if p.Total > max {
			max = p.Total
		}
	}
	runes := []rune(sparklineRunes)
	var b strings.Builder
	for _, p := range points {
		idx := 0
		if max > 0 && p.Total > 0 {
			idx = int(int64(p.Total) * int64(len(runes)-1) / int64(max))
			if idx == 0 {
				idx = 1
			}
		}
		b.WriteRune(runes[idx])
	}
	return b.String()
}

// Expenses renders the expense table honoring the current search query and
// recurring filter.
func (a *App) Expenses() string {
	rep := a.ledger.Report()
	cur := a.cfg.Currency

	rows := rep.Search(a.searchQuery)
	if a.showRecurringOnly {
		filtered := rows[:0]
		for _, e := range rows {
			if e.IsRecurring {
				filtered = append(filtered, e)
			}
		}
		rows = filtered
	}

	var b strings.Builder
	header := fmt.Sprintf("%-5s %-12s %-15s %-30s %10s  %s", "ID", "DATE", "CATEGORY", "DESCRIPTION", "AMOUNT", "RECURRING")
	b.WriteString(titleStyle.Render(header) + "\n")
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("no expenses") + "\n")
		return b.String()
	}
	for _, e := range rows {
		recurring := ""
		if e.IsRecurring {
			recurring = string(e.Recurrence)
		}
		b.WriteString(fmt.Sprintf("%-5d %-12s %-15s %-30s %10s  %s\n",
			e.ID, e.Date, e.Category, truncate(e.Description, 30), cur.Format(e.Amount), recurring))
	}
	if a.searchQuery != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("filter: %q", a.searchQuery)) + "\n")
	}
	return b.String()
}

// Monthly renders the selected month's breakdown with budget gauges and
// the total-versus-budget footer.
func (a *App) Monthly() string {
	rep := a.ledger.Report()
	cur := a.cfg.Currency
	year, month := a.selectedYear, a.selectedMonth

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)) + "\n")

	// Budgets apply per label, so Other(x) variants fold into one row.
	// Keeping the folded spend next to the tier keeps the gauge honest.
	var labels []string
	seen := make(map[string]bool)
	for _, entry := range rep.CategoryBreakdown(year, month) {
		label := models.ParseCategory(entry.Category).BudgetLabel()
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	for _, label := range labels {
		status := rep.BudgetStatus(models.ParseCategory(label), year, month)
		var line string
		switch status.Tier {
		case report.TierOver:
			line = redStyle.Render(fmt.Sprintf("%-15s %s / %s (over)", label, cur.Format(status.Spent), cur.Format(status.Limit)))
		case report.TierNear:
			line = yellowStyle.Render(fmt.Sprintf("%-15s %s / %s (near)", label, cur.Format(status.Spent), cur.Format(status.Limit)))
		case report.TierUnder:
			line = greenStyle.Render(fmt.Sprintf("%-15s %s / %s", label, cur.Format(status.Spent), cur.Format(status.Limit)))
		default:
			line = fmt.Sprintf("%-15s %s %s", label, cur.Format(status.Spent), dimStyle.Render("(no limit)"))
		}
		b.WriteString(line + "\n")
	}

	total := rep.MonthlyTotal(year, month)
	totalBudget := rep.TotalBudget()
	if totalBudget > 0 {
		remaining := totalBudget - total
		if remaining >= 0 {
			b.WriteString(fmt.Sprintf("Total: %s | Budget: %s | %s\n",
				cur.Format(total), cur.Format(totalBudget), greenStyle.Render(cur.Format(remaining)+" remaining")))
		} else {
			b.WriteString(fmt.Sprintf("Total: %s | Budget: %s | %s\n",
				cur.Format(total), cur.Format(totalBudget), redStyle.Render(cur.Format(-remaining)+" over budget!")))
		}
	} else {
		b.WriteString(fmt.Sprintf("Total Spent: %s\n", cur.Format(total)))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
