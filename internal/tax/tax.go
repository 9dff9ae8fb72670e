// Package tax estimates income tax from a progressive bracket table with an optional
// flat surtax. The estimate is a rough planning number, not tax advice.
package tax

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultFallbackRate is the open-ended top rate used when a table has no brackets
// and no explicit top rate.
var DefaultFallbackRate = decimal.RequireFromString("0.20")

// ErrInvalidRatio is returned for a taxable ratio outside [0, 1].
var ErrInvalidRatio = errors.New("taxable ratio must be between 0 and 1")

// Bracket taxes income up to UpTo at Rate.
type Bracket struct {
	UpTo decimal.Decimal
	Rate decimal.Decimal
}

// Table is a progressive schedule. Brackets are kept in ascending UpTo order.
type Table struct {
	Brackets        []Bracket
	TopRate         *decimal.Decimal // rate above the last UpTo; nil = last bracket's rate
	SurtaxThreshold *decimal.Decimal // nil = no surtax
	SurtaxRate      decimal.Decimal

	sorted bool
}

// NewTable returns a table with brackets stable-sorted by UpTo.
func NewTable(brackets []Bracket) Table {
	bs := make([]Bracket, len(brackets))
	copy(bs, brackets)
	sorted := sort.SliceIsSorted(bs, func(i, j int) bool { return bs[i].UpTo.LessThan(bs[j].UpTo) })
	if !sorted {
		sort.SliceStable(bs, func(i, j int) bool { return bs[i].UpTo.LessThan(bs[j].UpTo) })
	}
	return Table{Brackets: bs, sorted: sorted}
}

// WasSorted reports whether the brackets given to NewTable were already ascending.
func (t Table) WasSorted() bool { return t.sorted }

// WithSurtax returns a copy of t with a surtax above threshold.
func (t Table) WithSurtax(threshold, rate decimal.Decimal) Table {
	t.SurtaxThreshold = &threshold
	t.SurtaxRate = rate
	return t
}

// WithTopRate returns a copy of t taxing income above the last bracket at rate.
func (t Table) WithTopRate(rate decimal.Decimal) Table {
	t.TopRate = &rate
	return t
}

func (t Table) topRate() decimal.Decimal {
	if t.TopRate != nil {
		return *t.TopRate
	}
	if n := len(t.Brackets); n > 0 {
		return t.Brackets[n-1].Rate
	}
	return DefaultFallbackRate
}

// Slice is the part of an income taxed at one rate.
type Slice struct {
	From    decimal.Decimal
	To      decimal.Decimal
	Rate    decimal.Decimal
	Tax     decimal.Decimal
	Surtax  bool // the flat surtax layer
	OpenEnd bool // income above every explicit bracket
}

// Estimate returns the tax on income, rounded to 2 places. Income on a bracket boundary
// is taxed entirely within that bracket. Non-positive income owes nothing.
func Estimate(income decimal.Decimal, t Table) decimal.Decimal {
	total := decimal.Zero
	for _, s := range Breakdown(income, t) {
		total = total.Add(s.Tax)
	}
	return total.Round(2)
}

// Breakdown lists the taxed slices of income in bracket order, surtax last.
// Slice taxes are unrounded.
func Breakdown(income decimal.Decimal, t Table) []Slice {
	if !income.IsPositive() {
		return nil
	}

	var slices []Slice
	prevCap := decimal.Zero
	terminated := false
	for _, b := range t.Brackets {
		if b.UpTo.LessThan(income) {
			slices = append(slices, Slice{
				From: prevCap,
				To:   b.UpTo,
				Rate: b.Rate,
				Tax:  b.UpTo.Sub(prevCap).Mul(b.Rate),
			})
			prevCap = b.UpTo
			continue
		}
		slices = append(slices, Slice{
			From: prevCap,
			To:   income,
			Rate: b.Rate,
			Tax:  income.Sub(prevCap).Mul(b.Rate),
		})
		terminated = true
		break
	}

	if !terminated {
		rate := t.topRate()
		slices = append(slices, Slice{
			From:    prevCap,
			To:      income,
			Rate:    rate,
			Tax:     income.Sub(prevCap).Mul(rate),
			OpenEnd: true,
		})
	}

	if t.SurtaxThreshold != nil && income.GreaterThan(*t.SurtaxThreshold) {
		slices = append(slices, Slice{
			From:   *t.SurtaxThreshold,
			To:     income,
			Rate:   t.SurtaxRate,
			Tax:    income.Sub(*t.SurtaxThreshold).Mul(t.SurtaxRate),
			Surtax: true,
		})
	}
	return slices
}

// EffectiveRate returns tax / income, or zero for non-positive income.
func EffectiveRate(income, tax decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return tax.Div(income)
}

// AnnualizedIncome projects a month's net to a year and applies the taxable ratio.
// Negative results are clamped to zero.
func AnnualizedIncome(monthNet, ratio decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateRatio(ratio); err != nil {
		return decimal.Zero, err
	}
	income := monthNet.Mul(decimal.NewFromInt(12)).Mul(ratio)
	if income.IsNegative() {
		return decimal.Zero, nil
	}
	return income.Round(2), nil
}

// ValidateRatio checks that ratio lies in [0, 1].
func ValidateRatio(ratio decimal.Decimal) error {
	if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: got %s", ErrInvalidRatio, ratio)
	}
	return nil
}
