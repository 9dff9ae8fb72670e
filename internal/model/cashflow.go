package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthFormat is the layout of month labels ("2025-01").
const MonthFormat = "2006-01"

// MonthNet is the aggregated cash flow of one calendar month.
type MonthNet struct {
	Month    string          // "YYYY-MM"
	Net      decimal.Decimal // Income + Expenses, rounded to 2 places
	Income   decimal.Decimal // sum of positive amounts
	Expenses decimal.Decimal // sum of negative amounts (<= 0)
	Count    int
}

// MonthlyCashflow is an ordered month -> net mapping, oldest month first.
type MonthlyCashflow []MonthNet

// Get returns the entry for a "YYYY-MM" label.
func (mc MonthlyCashflow) Get(month string) (MonthNet, bool) {
	for _, m := range mc {
		if m.Month == month {
			return m, true
		}
	}
	return MonthNet{}, false
}

// Last returns the most recent month, or false when there is none.
func (mc MonthlyCashflow) Last() (MonthNet, bool) {
	if len(mc) == 0 {
		return MonthNet{}, false
	}
	return mc[len(mc)-1], true
}

// Total returns the sum of all monthly nets.
func (mc MonthlyCashflow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, m := range mc {
		total = total.Add(m.Net)
	}
	return total
}

// Labels returns the month labels in order.
func (mc MonthlyCashflow) Labels() []string {
	labels := make([]string, len(mc))
	for i, m := range mc {
		labels[i] = m.Month
	}
	return labels
}

// DayNet is the net of all transactions on one calendar day.
type DayNet struct {
	Day time.Time
	Net decimal.Decimal
}
