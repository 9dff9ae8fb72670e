package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/money"
	"github.com/cleared-dev/taxflow/internal/tax"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.editing {
			return m.updateRatio(msg)
		}
		if m.screen == screenPicker {
			return m.updatePicker(msg)
		}
		return m.updateAnalysis(msg)

	case filesMsg:
		m.files = msg.files
		m.cursor = 0
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
		} else if len(msg.files) == 0 {
			m.setStatus("no csv, xlsx or xls files in "+m.dir, true)
		}

	case analyzedMsg:
		m.ledgerPath = msg.path
		m.err = msg.err
		m.conf = msg.conf
		m.result = msg.result
		m.screen = screenAnalysis
		if msg.err == nil {
			m.table.SetRows(m.monthlyRows())
			if m.ratio.Value() == "" {
				m.ratio.SetValue(msg.result.TaxableRatio.String())
			}
		}

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("wrote %s (report %s)", msg.path, msg.id), false)
		}
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.files)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Select):
		if len(m.files) == 0 {
			return m, nil
		}
		m.status = ""
		return m, m.analyzeCmd(m.files[m.cursor].Path)
	case key.Matches(msg, keys.Reload):
		return m, scanCmd(m.dir)
	}
	return m, nil
}

func (m Model) updateAnalysis(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		if m.dir != "" {
			m.screen = screenPicker
			m.status = ""
			return m, scanCmd(m.dir)
		}
	case key.Matches(msg, keys.Reload):
		m.setStatus("reloaded "+m.ledgerPath, false)
		return m, m.analyzeCmd(m.ledgerPath)
	case key.Matches(msg, keys.Ratio):
		m.editing = true
		return m, m.ratio.Focus()
	case key.Matches(msg, keys.Export):
		if m.result == nil || m.err != nil {
			m.setStatus("nothing to export", true)
			return m, nil
		}
		m.setStatus("exporting...", false)
		return m, exportCmd(m.ledgerPath, m.conf, m.result)
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateRatio edits the taxable ratio. Enter applies and recomputes; esc cancels.
func (m Model) updateRatio(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.ratio.Blur()
		if m.result != nil {
			m.ratio.SetValue(m.result.TaxableRatio.String())
		}
		return m, nil
	case tea.KeyEnter:
		r, err := decimal.NewFromString(strings.TrimSpace(m.ratio.Value()))
		if err == nil {
			err = tax.ValidateRatio(r)
		}
		if err != nil {
			m.setStatus(fmt.Sprintf("invalid ratio %q: %v", m.ratio.Value(), err), true)
			return m, nil
		}
		m.editing = false
		m.ratio.Blur()
		m.cfg.Ratio = &r
		m.setStatus("taxable ratio set to "+r.String(), false)
		return m, m.analyzeCmd(m.ledgerPath)
	}

	var cmd tea.Cmd
	m.ratio, cmd = m.ratio.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) symbol() string {
	if m.conf == nil {
		return ""
	}
	return m.conf.Currency.Symbol
}

func (m Model) monthlyRows() []table.Row {
	sym := m.symbol()
	rows := make([]table.Row, 0, len(m.result.Monthly))
	for _, mn := range m.result.Monthly {
		rows = append(rows, table.Row{
			mn.Month,
			money.Format(mn.Income, sym),
			money.Format(mn.Expenses, sym),
			money.Format(mn.Net, sym),
			fmt.Sprintf("%d", mn.Count),
		})
	}
	return rows
}
