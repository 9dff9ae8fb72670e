package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxflow/internal/analysis"
	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/money"
)

func newSummaryCommand(g *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary <ledger>",
		Short: "Print monthly cash flow, forecast and tax estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.OutOrStdout(), g, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func runSummary(out io.Writer, g *globalOptions, ledgerPath string, asJSON bool) error {
	req, err := g.request(ledgerPath)
	if err != nil {
		return err
	}

	cfg, r, err := analysis.AnalyzeFile(req, g.logger())
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.View()); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return nil
	}

	printSummary(out, cfg, r)
	return nil
}

func printSummary(out io.Writer, cfg *config.Config, r *analysis.Result) {
	sym := cfg.Currency.Symbol

	if len(r.Monthly) == 0 {
		fmt.Fprintln(out, "No transactions.")
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Month", "Income", "Expenses", "Net", "Rows").
			StyleFunc(func(row, col int) lipgloss.Style {
				s := lipgloss.NewStyle().Padding(0, 1)
				if col > 0 {
					s = s.Align(lipgloss.Right)
				}
				return s
			})
		for _, m := range r.Monthly {
			t.Row(m.Month, money.Format(m.Income, sym), money.Format(m.Expenses, sym),
				money.Format(m.Net, sym), strconv.Itoa(m.Count))
		}
		t.Row("Total", money.Format(r.Totals.Income, sym), money.Format(r.Totals.Expenses, sym),
			money.Format(r.Totals.Net, sym), strconv.Itoa(r.Totals.Count))
		fmt.Fprintln(out, t.String())
	}

	fmt.Fprintf(out, "%d-day forecast:   %s\n", r.Forecast.HorizonDays, money.Format(r.Forecast.Amount, sym))
	fmt.Fprintf(out, "Annualized income: %s (ratio %s)\n", money.Format(r.Income, sym), r.TaxableRatio)
	if r.Tax != nil {
		fmt.Fprintf(out, "Estimated tax:     %s (effective %s)\n", money.Format(*r.Tax, sym), money.Percent(r.EffectiveRate))
	} else {
		fmt.Fprintf(out, "Estimated tax:     unavailable: %v\n", r.TaxErr)
	}
	if r.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d of %d rows with unreadable dates.\n", r.Skipped, r.Rows)
	}
	if r.Coerced > 0 {
		fmt.Fprintf(out, "Counted %d non-numeric amounts as zero.\n", r.Coerced)
	}
}
