package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized ledger row.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
}

// MonthLabel returns the calendar month of the transaction as "YYYY-MM".
func (t Transaction) MonthLabel() string {
	return t.Date.Format(MonthFormat)
}

// Day returns the transaction date truncated to midnight UTC.
func (t Transaction) Day() time.Time {
	y, m, d := t.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
