package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/taxflow/internal/tax"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	threshold := 721560.0
	cfg.SurtaxThreshold = &threshold
	cfg.SurtaxRate = 0.03

	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	require.Len(t, got.Brackets, 2)
	assert.InDelta(t, 75600, *got.Brackets[0].UpTo, 0.001)
	assert.InDelta(t, 0.14, *got.Brackets[1].Rate, 0.001)
	require.NotNil(t, got.TopRate)
	assert.InDelta(t, 0.20, *got.TopRate, 0.001)
	require.NotNil(t, got.SurtaxThreshold)
	assert.InDelta(t, 721560, *got.SurtaxThreshold, 0.001)
	assert.InDelta(t, 0.03, got.SurtaxRate, 0.001)
	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, cfg.Forecast, got.Forecast)
	assert.Equal(t, cfg.Report.Title, got.Report.Title)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Len(t, cfg.Brackets, 2)
	assert.Equal(t, "₪", cfg.Currency.Symbol)
	assert.Equal(t, "ILS", cfg.Currency.Code)
	assert.Equal(t, 90, cfg.Forecast.WindowDays)
	assert.Equal(t, 30, cfg.Forecast.HorizonDays)
	assert.Equal(t, "1", cfg.Ratio().String())
	assert.Nil(t, cfg.SurtaxThreshold)

	table, err := cfg.TaxTable()
	require.NoError(t, err)
	assert.Equal(t, "30460.00", tax.Estimate(dec("200000"), table).StringFixed(2))
}

func TestLoad_Testdata(t *testing.T) {
	cfg, err := Load("../../testdata/taxflow.yaml")
	require.NoError(t, err)

	table, err := cfg.TaxTable()
	require.NoError(t, err)
	assert.Nil(t, table.TopRate)
	assert.Equal(t, "10976.00", tax.Estimate(dec("100000"), table).StringFixed(2))
	assert.Equal(t, "24976.00", tax.Estimate(dec("200000"), table).StringFixed(2))
}

func TestLoad_PartialFileTakesDefaults(t *testing.T) {
	path := writeConfig(t, "brackets:\n  - {up_to: 1000, rate: 0.1}\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "₪", cfg.Currency.Symbol)
	assert.Equal(t, 90, cfg.Forecast.WindowDays)
	assert.Equal(t, "TaxFlow report", cfg.Report.Title)
	assert.Equal(t, "1", cfg.Ratio().String())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, ErrConfigUnavailable)
}

func TestLoadUnparsable(t *testing.T) {
	path := writeConfig(t, "brackets: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigUnavailable)

	var ue *UnavailableError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, path, ue.Path)
}

func TestTaxTable_MalformedBracket(t *testing.T) {
	tests := []struct {
		yaml  string
		index int
		field string
	}{
		{"brackets:\n  - {rate: 0.1}\n", 0, "up_to"},
		{"brackets:\n  - {up_to: 100, rate: 0.1}\n  - {up_to: 200}\n", 1, "rate"},
	}
	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, tt.yaml))
		require.NoError(t, err)

		_, err = cfg.TaxTable()
		require.Error(t, err)
		assert.ErrorIs(t, err, tax.ErrMalformedBracket)

		var mbe *tax.MalformedBracketError
		require.True(t, errors.As(err, &mbe))
		assert.Equal(t, tt.index, mbe.Index)
		assert.Equal(t, tt.field, mbe.Field)
	}
}

func TestTaxTable_Surtax(t *testing.T) {
	path := writeConfig(t, "brackets:\n  - {up_to: 75600, rate: 0.10}\n  - {up_to: 108600, rate: 0.14}\nsurtax_threshold: 150000\nsurtax_rate: 0.03\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	table, err := cfg.TaxTable()
	require.NoError(t, err)
	require.NotNil(t, table.SurtaxThreshold)
	assert.Equal(t, "26476.00", tax.Estimate(dec("200000"), table).StringFixed(2))
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "up_to: 75600")
	assert.Contains(t, contents, "rate: 0.1")
	assert.Contains(t, contents, "top_rate: 0.2")
	assert.Contains(t, contents, "window_days: 90")
	assert.NotContains(t, contents, "surtax_threshold")
}

func TestLoadEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("TAXFLOW_CONFIG", "/etc/taxflow.yaml")
	t.Setenv("TAXFLOW_LOG_PRETTY", "false")
	t.Setenv("TAXFLOW_LOG_LEVEL", "")
	t.Setenv("TAXFLOW_ADDR", "")

	env := LoadEnv()
	assert.Equal(t, "/etc/taxflow.yaml", env.ConfigPath)
	assert.False(t, env.LogPretty)
	assert.Equal(t, "warn", env.LogLevel)
	assert.Equal(t, ":8080", env.Addr)
}
