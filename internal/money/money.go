// Package money formats decimal amounts for display.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format renders d with thousands separators and 2 decimals, prefixed by symbol.
// Negative amounts put the sign before the symbol: -₪1,234.50.
func Format(d decimal.Decimal, symbol string) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + symbol + humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// Percent renders a fraction as a percentage with 2 decimals: 0.10976 -> "10.98%".
func Percent(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
