// Package cashflow aggregates normalized transactions into monthly and daily nets and
// projects a naive forward cash flow from them.
package cashflow

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/model"
)

// Totals summarizes a transaction set.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	Count    int
}

// Monthly groups transactions by calendar month and sums them. Months appear in
// chronological order; each net is rounded to 2 places.
func Monthly(txns []model.Transaction) model.MonthlyCashflow {
	var out model.MonthlyCashflow
	pos := make(map[string]int)

	for _, txn := range sortedByDate(txns) {
		label := txn.MonthLabel()
		i, ok := pos[label]
		if !ok {
			i = len(out)
			pos[label] = i
			out = append(out, model.MonthNet{Month: label})
		}
		m := &out[i]
		m.Net = m.Net.Add(txn.Amount)
		if txn.Amount.IsPositive() {
			m.Income = m.Income.Add(txn.Amount)
		} else {
			m.Expenses = m.Expenses.Add(txn.Amount)
		}
		m.Count++
	}

	for i := range out {
		out[i].Net = out[i].Net.Round(2)
		out[i].Income = out[i].Income.Round(2)
		out[i].Expenses = out[i].Expenses.Round(2)
	}
	return out
}

// Daily sums transactions per calendar day, oldest day first.
func Daily(txns []model.Transaction) []model.DayNet {
	var out []model.DayNet
	for _, txn := range sortedByDate(txns) {
		day := txn.Day()
		if n := len(out); n > 0 && out[n-1].Day.Equal(day) {
			out[n-1].Net = out[n-1].Net.Add(txn.Amount)
			continue
		}
		out = append(out, model.DayNet{Day: day, Net: txn.Amount})
	}
	return out
}

// Summarize totals income, expenses and net over all transactions.
func Summarize(txns []model.Transaction) Totals {
	var t Totals
	for _, txn := range txns {
		if txn.Amount.IsPositive() {
			t.Income = t.Income.Add(txn.Amount)
		} else {
			t.Expenses = t.Expenses.Add(txn.Amount)
		}
		t.Count++
	}
	t.Net = t.Income.Add(t.Expenses).Round(2)
	t.Income = t.Income.Round(2)
	t.Expenses = t.Expenses.Round(2)
	return t
}

// sortedByDate orders txns by calendar day. It returns txns unchanged when already
// ordered, else a stably sorted copy.
func sortedByDate(txns []model.Transaction) []model.Transaction {
	for i := 1; i < len(txns); i++ {
		if txns[i].Day().Before(txns[i-1].Day()) {
			cp := make([]model.Transaction, len(txns))
			copy(cp, txns)
			sort.SliceStable(cp, func(a, b int) bool { return cp[a].Day().Before(cp[b].Day()) })
			return cp
		}
	}
	return txns
}
