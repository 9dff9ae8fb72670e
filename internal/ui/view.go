package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/dustin/go-humanize"

	"github.com/cleared-dev/taxflow/internal/money"
)

const (
	defaultWidth = 80
	maxTableRows = 12
)

func newMonthlyTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Month", Width: 8},
			{Title: "Income", Width: 16},
			{Title: "Expenses", Width: 16},
			{Title: "Net", Width: 16},
			{Title: "Rows", Width: 5},
		}),
		table.WithHeight(maxTableRows),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(palette.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(palette.Accent).Bold(false)
	t.SetStyles(s)
	return t
}

func (m Model) View() string {
	sections := []string{renderBanner()}
	if m.screen == screenPicker {
		sections = append(sections, m.viewPicker(), m.help.View(pickerKeys(keys)))
	} else {
		sections = append(sections, m.viewAnalysis(), m.help.View(analysisKeys(keys)))
	}
	if m.status != "" {
		style := mutedStyle
		if m.statusErr {
			style = errorStyle
		}
		sections = append(sections, style.Render(m.status))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(sections, "\n\n"))
}

// renderBanner renders the title in the built-in standard figlet font.
func renderBanner() string {
	fig := figure.NewFigure("TaxFlow", "", true)
	lines := fig.Slicify()
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return titleStyle.Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a ledger in " + m.dir))
	b.WriteString("\n\n")
	if len(m.files) == 0 {
		b.WriteString(mutedStyle.Render("(none)"))
		return b.String()
	}
	for i, f := range m.files {
		line := fmt.Sprintf("%-32s %-5s %8s", f.Name, f.Format, humanize.Bytes(uint64(f.Size)))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewAnalysis() string {
	header := titleStyle.Render(filepath.Base(m.ledgerPath))
	if m.err != nil {
		return header + "\n\n" + errorStyle.Render(m.err.Error())
	}
	if m.result == nil {
		return header + "\n\n" + mutedStyle.Render("Loading...")
	}

	parts := []string{header, m.viewMetrics(), m.ratio.View()}
	if notes := m.viewNotes(); notes != "" {
		parts = append(parts, notes)
	}
	if len(m.result.Monthly) == 0 {
		parts = append(parts, mutedStyle.Render("No transactions."))
	} else {
		parts = append(parts, m.table.View(), m.viewChart())
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) viewMetrics() string {
	sym := m.symbol()
	r := m.result

	cards := []string{
		card(fmt.Sprintf("%d-day forecast", r.Forecast.HorizonDays), money.Format(r.Forecast.Amount, sym)),
		card("Annualized income", money.Format(r.Income, sym)),
	}
	if r.Tax != nil {
		cards = append(cards,
			card("Estimated tax", money.Format(*r.Tax, sym)),
			card("Effective rate", money.Percent(r.EffectiveRate)),
		)
	} else {
		cards = append(cards, card("Estimated tax", errorStyle.Render("unavailable")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func card(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func (m Model) viewNotes() string {
	r := m.result
	var notes []string
	if r.TaxErr != nil {
		notes = append(notes, errorStyle.Render("Tax: "+r.TaxErr.Error()))
	}
	if r.Skipped > 0 {
		notes = append(notes, warnStyle.Render(fmt.Sprintf("Skipped %d of %d rows with unreadable dates", r.Skipped, r.Rows)))
	}
	if r.Coerced > 0 {
		notes = append(notes, warnStyle.Render(fmt.Sprintf("Counted %d non-numeric amounts as zero", r.Coerced)))
	}
	return strings.Join(notes, "\n")
}

func (m Model) viewChart() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	sym := m.symbol()

	labels := make([]string, len(m.result.Monthly))
	values := make([]float64, len(m.result.Monthly))
	for i, mn := range m.result.Monthly {
		labels[i] = fmt.Sprintf("%s %14s", mn.Month, money.Format(mn.Net, sym))
		values[i] = mn.Net.InexactFloat64()
	}
	barWidth := max(width-4-lipgloss.Width(labels[0])-1, 10)
	return RenderBars(labels, values, barWidth, palette.Success, palette.Error)
}
