package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/money"
	"github.com/cleared-dev/taxflow/internal/tax"
)

func newTaxCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tax <annual-income>",
		Short: "Estimate tax on an annual income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTax(cmd.OutOrStdout(), g, args[0])
		},
	}
}

func runTax(out io.Writer, g *globalOptions, incomeArg string) error {
	income, err := decimal.NewFromString(incomeArg)
	if err != nil {
		return fmt.Errorf("parsing income %q: %w", incomeArg, err)
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	table, err := cfg.TaxTable()
	if err != nil {
		return fmt.Errorf("config %s: %w", g.configPath, err)
	}
	if !table.WasSorted() {
		log := g.logger()
		log.Warn().Str("config", g.configPath).Msg("brackets not in ascending up_to order, sorted before use")
	}

	sym := cfg.Currency.Symbol
	estimate := tax.Estimate(income, table)
	for _, s := range tax.Breakdown(income, table) {
		label := money.Format(s.From, sym) + " - " + money.Format(s.To, sym)
		switch {
		case s.Surtax:
			label = "surtax above " + money.Format(s.From, sym)
		case s.OpenEnd:
			label = "above " + money.Format(s.From, sym)
		}
		fmt.Fprintf(out, "  %-36s %7s  %s\n", label, money.Percent(s.Rate), money.Format(s.Tax, sym))
	}
	fmt.Fprintf(out, "Tax on %s: %s (effective %s)\n",
		money.Format(income, sym), money.Format(estimate, sym), money.Percent(tax.EffectiveRate(income, estimate)))
	return nil
}
