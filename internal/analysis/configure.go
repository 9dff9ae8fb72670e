package analysis

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/config"
)

// Configure loads the config at path and derives run options. The returned config is
// never nil: when the file is unavailable the defaults supply display settings, no tax
// table is set, and the load error is kept in Options.TableErr.
// A non-nil ratio overrides the configured taxable ratio.
func Configure(path string, ratio *decimal.Decimal, log zerolog.Logger) (*config.Config, Options) {
	cfg, err := config.Load(path)
	if err != nil {
		log.Warn().Err(err).Msg("tax config unavailable, cash flow only")
		cfg = config.Default()
		return cfg, Options{
			TaxableRatio: pickRatio(cfg, ratio),
			TableErr:     err,
			Forecast:     cfg.ForecastOptions(),
		}
	}

	opts := Options{
		TaxableRatio: pickRatio(cfg, ratio),
		Forecast:     cfg.ForecastOptions(),
	}

	table, err := cfg.TaxTable()
	if err != nil {
		log.Warn().Err(err).Str("config", path).Msg("malformed tax brackets")
		opts.TableErr = err
		return cfg, opts
	}
	if !table.WasSorted() {
		log.Warn().Str("config", path).Msg("brackets not in ascending up_to order, sorted before use")
	}
	opts.Table = &table
	return cfg, opts
}

func pickRatio(cfg *config.Config, ratio *decimal.Decimal) decimal.Decimal {
	if ratio != nil {
		return *ratio
	}
	return cfg.Ratio()
}
