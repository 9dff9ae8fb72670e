// Package analysis runs the cash-flow and tax stages over a loaded ledger.
// Cash flow never depends on the tax configuration: a missing or broken bracket table
// only leaves the tax fields empty and records why.
package analysis

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/cashflow"
	"github.com/cleared-dev/taxflow/internal/ledger"
	"github.com/cleared-dev/taxflow/internal/model"
	"github.com/cleared-dev/taxflow/internal/tax"
)

// ErrNoTaxTable is recorded when no table and no load error were supplied.
var ErrNoTaxTable = errors.New("no tax table configured")

// Options are the inputs besides the transactions themselves.
type Options struct {
	TaxableRatio decimal.Decimal
	Table        *tax.Table // nil when no usable tax config was loaded
	TableErr     error      // why Table is nil
	Forecast     cashflow.ForecastOptions
	Now          func() time.Time
}

// Result holds every derived view of one ledger.
type Result struct {
	Monthly  model.MonthlyCashflow
	Totals   cashflow.Totals
	Forecast cashflow.Projection

	TaxableRatio  decimal.Decimal
	LastMonth     string
	Income        decimal.Decimal  // annualized taxable income estimate
	Tax           *decimal.Decimal // nil when TaxErr is set
	EffectiveRate decimal.Decimal
	Breakdown     []tax.Slice
	TaxErr        error

	Rows        int
	Skipped     int
	Coerced     int
	GeneratedAt time.Time
}

// Run computes all views. Counts of skipped and coerced rows are left to the caller.
func Run(txns []model.Transaction, opts Options) *Result {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	r := &Result{
		Monthly:      cashflow.Monthly(txns),
		Totals:       cashflow.Summarize(txns),
		Forecast:     cashflow.Project(txns, opts.Forecast),
		TaxableRatio: opts.TaxableRatio,
		GeneratedAt:  now(),
	}

	lastNet := decimal.Zero
	if last, ok := r.Monthly.Last(); ok {
		r.LastMonth = last.Month
		lastNet = last.Net
	}

	income, err := tax.AnnualizedIncome(lastNet, opts.TaxableRatio)
	if err != nil {
		r.TaxErr = err
		return r
	}
	r.Income = income

	if opts.Table == nil {
		r.TaxErr = opts.TableErr
		if r.TaxErr == nil {
			r.TaxErr = ErrNoTaxTable
		}
		return r
	}

	estimate := tax.Estimate(income, *opts.Table)
	r.Tax = &estimate
	r.EffectiveRate = tax.EffectiveRate(income, estimate)
	r.Breakdown = tax.Breakdown(income, *opts.Table)
	return r
}

// RunLedger runs the analysis over a loaded ledger and carries its row counts.
func RunLedger(res *ledger.Result, opts Options) *Result {
	r := Run(res.Transactions, opts)
	r.Rows = res.Rows
	r.Skipped = res.Skipped
	r.Coerced = res.Coerced
	return r
}
