package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxflow/internal/buildinfo"
	"github.com/cleared-dev/taxflow/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	env := config.LoadEnv()
	g := &globalOptions{logPretty: env.LogPretty}

	rootCmd := &cobra.Command{
		Use:     "taxflow",
		Short:   "Cash-flow forecasting and income tax estimates for a bank ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", env.ConfigPath, "tax config file (env TAXFLOW_CONFIG)")
	pf.StringVar(&g.logLevel, "log-level", env.LogLevel, "log level: debug, info, warn, error (env TAXFLOW_LOG_LEVEL)")
	pf.StringVar(&g.ratio, "ratio", "", "taxable ratio in [0,1], overrides the config")
	pf.StringVar(&g.format, "format", "", "ledger format: csv, xlsx, xls (default from extension)")
	pf.StringVar(&g.sheet, "sheet", "", "worksheet name for spreadsheet ledgers (default first)")
	pf.BoolVar(&g.dayFirst, "day-first", false, "read ambiguous dates as day/month/year")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newSummaryCommand(g))
	rootCmd.AddCommand(newTaxCommand(g))
	rootCmd.AddCommand(newReportCommand(g))
	rootCmd.AddCommand(newTUICommand(g))
	rootCmd.AddCommand(newServeCommand(g, env.Addr))

	return rootCmd
}
