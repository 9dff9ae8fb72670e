package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/analysis"
	"github.com/cleared-dev/taxflow/internal/ledger"
	"github.com/cleared-dev/taxflow/internal/logger"
	"github.com/cleared-dev/taxflow/internal/tax"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
	logPretty  bool
	ratio      string
	format     string
	sheet      string
	dayFirst   bool
}

func (g *globalOptions) logger() zerolog.Logger {
	return logger.New(logger.Config{Level: g.logLevel, Pretty: g.logPretty})
}

// ratioOverride parses --ratio. It returns nil when the flag is unset.
func (g *globalOptions) ratioOverride() (*decimal.Decimal, error) {
	if g.ratio == "" {
		return nil, nil
	}
	r, err := decimal.NewFromString(g.ratio)
	if err != nil {
		return nil, fmt.Errorf("parsing --ratio %q: %w", g.ratio, err)
	}
	if err := tax.ValidateRatio(r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (g *globalOptions) loadOptions() ledger.Options {
	return ledger.Options{Sheet: g.sheet, DayFirst: g.dayFirst}
}

func (g *globalOptions) request(ledgerPath string) (analysis.Request, error) {
	ratio, err := g.ratioOverride()
	if err != nil {
		return analysis.Request{}, err
	}
	return analysis.Request{
		LedgerPath: ledgerPath,
		Format:     g.format,
		Load:       g.loadOptions(),
		ConfigPath: g.configPath,
		Ratio:      ratio,
	}, nil
}
