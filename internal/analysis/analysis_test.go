package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/ledger"
	"github.com/cleared-dev/taxflow/internal/tax"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func loadSample(t *testing.T) *ledger.Result {
	t.Helper()
	res, err := ledger.LoadFile("../../testdata/ledger.csv", "", ledger.Options{})
	require.NoError(t, err)
	return res
}

func fixedNow() time.Time {
	return time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
}

func TestRunLedger_WithTable(t *testing.T) {
	_, opts := Configure("../../testdata/taxflow.yaml", nil, zerolog.Nop())
	opts.Now = fixedNow

	r := RunLedger(loadSample(t), opts)

	require.Len(t, r.Monthly, 3)
	assert.Equal(t, "2025-03", r.LastMonth)
	assert.Equal(t, "38363.44", r.Forecast.Amount.StringFixed(2))
	assert.Equal(t, "46341.00", r.Income.StringFixed(2))
	require.NoError(t, r.TaxErr)
	require.NotNil(t, r.Tax)
	assert.Equal(t, "4634.10", r.Tax.StringFixed(2))
	assert.Equal(t, "0.1", r.EffectiveRate.String())
	assert.Len(t, r.Breakdown, 1)
	assert.Equal(t, 9, r.Rows)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Coerced)
	assert.True(t, r.GeneratedAt.Equal(fixedNow()))
}

func TestRun_CashFlowWithoutConfig(t *testing.T) {
	cfg, opts := Configure(filepath.Join(t.TempDir(), "missing.yaml"), nil, zerolog.Nop())
	require.NotNil(t, cfg, "defaults stand in for display settings")
	assert.Nil(t, opts.Table)

	r := RunLedger(loadSample(t), opts)
	assert.Len(t, r.Monthly, 3)
	assert.Equal(t, "38363.44", r.Forecast.Amount.StringFixed(2))
	assert.Nil(t, r.Tax)
	assert.ErrorIs(t, r.TaxErr, config.ErrConfigUnavailable)
}

func TestRun_MalformedBracket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brackets:\n  - {up_to: 100}\n"), 0o644))

	_, opts := Configure(path, nil, zerolog.Nop())
	r := RunLedger(loadSample(t), opts)

	assert.Len(t, r.Monthly, 3)
	assert.Nil(t, r.Tax)
	assert.ErrorIs(t, r.TaxErr, tax.ErrMalformedBracket)
}

func TestRun_RatioOverride(t *testing.T) {
	half := dec("0.5")
	_, opts := Configure("../../testdata/taxflow.yaml", &half, zerolog.Nop())

	r := RunLedger(loadSample(t), opts)
	assert.Equal(t, "23170.50", r.Income.StringFixed(2))
	require.NotNil(t, r.Tax)
	assert.Equal(t, "2317.05", r.Tax.StringFixed(2))
}

func TestRun_InvalidRatio(t *testing.T) {
	bad := dec("2")
	_, opts := Configure("../../testdata/taxflow.yaml", &bad, zerolog.Nop())

	r := RunLedger(loadSample(t), opts)
	assert.Len(t, r.Monthly, 3)
	assert.Nil(t, r.Tax)
	assert.ErrorIs(t, r.TaxErr, tax.ErrInvalidRatio)
}

func TestRun_Empty(t *testing.T) {
	table := tax.NewTable([]tax.Bracket{{UpTo: dec("1000"), Rate: dec("0.1")}})
	r := Run(nil, Options{TaxableRatio: dec("1"), Table: &table})

	assert.Empty(t, r.Monthly)
	assert.True(t, r.Forecast.Amount.IsZero())
	assert.Empty(t, r.LastMonth)
	require.NotNil(t, r.Tax)
	assert.True(t, r.Tax.IsZero())
}

func TestRun_NoTable(t *testing.T) {
	r := Run(nil, Options{TaxableRatio: dec("1")})
	assert.True(t, errors.Is(r.TaxErr, ErrNoTaxTable))
}

func TestRun_LossMonthClampsIncome(t *testing.T) {
	res := &ledger.Result{}
	res.Transactions = loadSample(t).Transactions
	res.Transactions = append(res.Transactions, res.Transactions[0])
	res.Transactions[len(res.Transactions)-1].Date = time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	res.Transactions[len(res.Transactions)-1].Amount = dec("-500")

	_, opts := Configure("../../testdata/taxflow.yaml", nil, zerolog.Nop())
	r := RunLedger(res, opts)
	assert.Equal(t, "2025-04", r.LastMonth)
	assert.True(t, r.Income.IsZero())
	require.NotNil(t, r.Tax)
	assert.True(t, r.Tax.IsZero())
}

func TestView(t *testing.T) {
	_, opts := Configure("../../testdata/taxflow.yaml", nil, zerolog.Nop())
	v := RunLedger(loadSample(t), opts).View()

	require.Len(t, v.Monthly, 3)
	assert.Equal(t, MonthView{Month: "2025-02", Income: "4200.00", Expenses: "-1200.00", Net: "3000.00", Count: 3}, v.Monthly[1])
	assert.Equal(t, "10230.25", v.Totals.Net)
	assert.Equal(t, "38363.44", v.Forecast.Amount)
	assert.Equal(t, "46341.00", v.AnnualIncome)
	require.NotNil(t, v.Tax)
	assert.Equal(t, "4634.10", *v.Tax)
	assert.Equal(t, "0.1000", v.EffectiveRate)
	assert.Empty(t, v.TaxError)
	require.Len(t, v.Breakdown, 1)
	assert.Equal(t, "0.00", v.Breakdown[0].From)
	assert.Equal(t, "46341.00", v.Breakdown[0].To)
}

func TestView_TaxError(t *testing.T) {
	_, opts := Configure(filepath.Join(t.TempDir(), "missing.yaml"), nil, zerolog.Nop())
	v := RunLedger(loadSample(t), opts).View()

	assert.Nil(t, v.Tax)
	assert.Contains(t, v.TaxError, "unavailable")
	assert.Len(t, v.Monthly, 3)
}

func TestAnalyzeFile(t *testing.T) {
	cfg, r, err := AnalyzeFile(Request{
		LedgerPath: "../../testdata/ledger.csv",
		ConfigPath: "../../testdata/taxflow.yaml",
	}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "ILS", cfg.Currency.Code)
	require.NotNil(t, r.Tax)
	assert.Equal(t, "4634.10", r.Tax.StringFixed(2))
	assert.Equal(t, 1, r.Skipped)
}

func TestAnalyzeFile_MissingColumn(t *testing.T) {
	_, _, err := AnalyzeFile(Request{
		LedgerPath: "../../testdata/no_amount.csv",
		ConfigPath: "../../testdata/taxflow.yaml",
	}, zerolog.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrMissingColumn)
}

func TestAnalyze_Reader(t *testing.T) {
	f, err := os.Open("../../testdata/ledger.csv")
	require.NoError(t, err)
	defer f.Close()

	_, r, err := Analyze(f, Request{Format: "csv", ConfigPath: "../../testdata/taxflow.yaml"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, r.Monthly, 3)

	_, _, err = Analyze(f, Request{Format: "ods"}, zerolog.Nop())
	assert.ErrorIs(t, err, ledger.ErrUnsupportedFormat)
}
