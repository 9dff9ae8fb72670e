package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/taxflow/internal/cashflow"
	"github.com/cleared-dev/taxflow/internal/tax"
)

// DefaultFileName is the config file looked up when no path is given.
const DefaultFileName = "taxflow.yaml"

// ErrConfigUnavailable matches any UnavailableError via errors.Is.
var ErrConfigUnavailable = errors.New("config unavailable")

// UnavailableError reports a config file that is missing or cannot be parsed.
// It unwraps to the underlying cause.
type UnavailableError struct {
	Path string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("config %s unavailable: %v", e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is reports whether target is ErrConfigUnavailable.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrConfigUnavailable
}

// Config represents taxflow.yaml.
type Config struct {
	Brackets        []BracketConfig `yaml:"brackets"`
	TopRate         *float64        `yaml:"top_rate,omitempty"`
	SurtaxThreshold *float64        `yaml:"surtax_threshold,omitempty"`
	SurtaxRate      float64         `yaml:"surtax_rate,omitempty"`
	TaxableRatio    *float64        `yaml:"taxable_ratio,omitempty"`
	Currency        CurrencyConfig  `yaml:"currency"`
	Forecast        ForecastConfig  `yaml:"forecast"`
	Report          ReportConfig    `yaml:"report"`
}

// BracketConfig is one bracket entry. Both fields are required.
type BracketConfig struct {
	UpTo *float64 `yaml:"up_to"`
	Rate *float64 `yaml:"rate"`
}

// CurrencyConfig controls money display.
type CurrencyConfig struct {
	Symbol string `yaml:"symbol"`
	Code   string `yaml:"code"`
}

// ForecastConfig tunes the cash-flow projection.
type ForecastConfig struct {
	WindowDays  int `yaml:"window_days"`
	HorizonDays int `yaml:"horizon_days"`
}

// ReportConfig controls the PDF export.
type ReportConfig struct {
	Title string `yaml:"title"`
	Font  string `yaml:"font,omitempty"` // optional UTF-8 TTF; core fonts otherwise
}

// Load reads a taxflow.yaml file from disk. Sections left out of the file take defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnavailableError{Path: path, Err: fmt.Errorf("reading config: %w", err)}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &UnavailableError{Path: path, Err: fmt.Errorf("parsing config: %w", err)}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the starter config written by `taxflow init`.
func Default() *Config {
	cfg := &Config{
		Brackets: []BracketConfig{
			{UpTo: ptr(75600), Rate: ptr(0.10)},
			{UpTo: ptr(108600), Rate: ptr(0.14)},
		},
		TopRate:      ptr(0.20),
		TaxableRatio: ptr(1),
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Currency.Symbol == "" {
		c.Currency.Symbol = "₪"
	}
	if c.Currency.Code == "" {
		c.Currency.Code = "ILS"
	}
	if c.Forecast.WindowDays <= 0 {
		c.Forecast.WindowDays = cashflow.DefaultWindowDays
	}
	if c.Forecast.HorizonDays <= 0 {
		c.Forecast.HorizonDays = cashflow.DefaultHorizonDays
	}
	if c.Report.Title == "" {
		c.Report.Title = "TaxFlow report"
	}
}

// Ratio returns the configured taxable ratio, 1 when unset.
func (c *Config) Ratio() decimal.Decimal {
	if c.TaxableRatio == nil {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(*c.TaxableRatio)
}

// ForecastOptions returns the projection settings.
func (c *Config) ForecastOptions() cashflow.ForecastOptions {
	return cashflow.ForecastOptions{
		WindowDays:  c.Forecast.WindowDays,
		HorizonDays: c.Forecast.HorizonDays,
	}
}

// TaxTable converts the bracket section into a tax table. Entries missing up_to or
// rate fail with a *tax.MalformedBracketError.
func (c *Config) TaxTable() (tax.Table, error) {
	brackets := make([]tax.Bracket, len(c.Brackets))
	for i, b := range c.Brackets {
		if b.UpTo == nil {
			return tax.Table{}, &tax.MalformedBracketError{Index: i, Field: "up_to"}
		}
		if b.Rate == nil {
			return tax.Table{}, &tax.MalformedBracketError{Index: i, Field: "rate"}
		}
		brackets[i] = tax.Bracket{
			UpTo: decimal.NewFromFloat(*b.UpTo),
			Rate: decimal.NewFromFloat(*b.Rate),
		}
	}

	table := tax.NewTable(brackets)
	if c.TopRate != nil {
		table = table.WithTopRate(decimal.NewFromFloat(*c.TopRate))
	}
	if c.SurtaxThreshold != nil {
		table = table.WithSurtax(decimal.NewFromFloat(*c.SurtaxThreshold), decimal.NewFromFloat(c.SurtaxRate))
	}
	return table, nil
}

func ptr(v float64) *float64 { return &v }
