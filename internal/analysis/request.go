package analysis

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/ledger"
)

// Request names a ledger and the settings to analyze it with.
type Request struct {
	LedgerPath string // used by AnalyzeFile; also picks the format when Format is empty
	Format     string
	Load       ledger.Options
	ConfigPath string
	Ratio      *decimal.Decimal // overrides the configured taxable ratio
}

// AnalyzeFile reads the ledger at req.LedgerPath and the config, then runs the analysis.
// Ledger errors are returned; config errors only disable the tax stage.
func AnalyzeFile(req Request, log zerolog.Logger) (*config.Config, *Result, error) {
	res, err := ledger.LoadFile(req.LedgerPath, req.Format, req.Load)
	if err != nil {
		return nil, nil, err
	}
	return analyzeLoaded(res, req, log)
}

// Analyze is AnalyzeFile for an already open ledger. req.Format is required.
func Analyze(rd io.Reader, req Request, log zerolog.Logger) (*config.Config, *Result, error) {
	res, err := ledger.Load(rd, req.Format, req.Load)
	if err != nil {
		return nil, nil, err
	}
	return analyzeLoaded(res, req, log)
}

func analyzeLoaded(res *ledger.Result, req Request, log zerolog.Logger) (*config.Config, *Result, error) {
	if res.Skipped > 0 {
		log.Warn().Int("skipped", res.Skipped).Int("rows", res.Rows).Msg("dropped rows with unreadable dates")
	}
	if res.Coerced > 0 {
		log.Warn().Int("coerced", res.Coerced).Msg("non-numeric amounts counted as zero")
	}

	cfg, opts := Configure(req.ConfigPath, req.Ratio, log)
	return cfg, RunLedger(res, opts), nil
}
