package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxflow/internal/analysis"
	"github.com/cleared-dev/taxflow/internal/report"
)

func newReportCommand(g *globalOptions) *cobra.Command {
	var output string
	var csvPath string

	cmd := &cobra.Command{
		Use:   "report <ledger>",
		Short: "Export the analysis as a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), g, args[0], output, csvPath)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "report.pdf", "PDF output path")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write monthly lines to this CSV file")

	return cmd
}

func runReport(out io.Writer, g *globalOptions, ledgerPath, output, csvPath string) error {
	req, err := g.request(ledgerPath)
	if err != nil {
		return err
	}

	cfg, r, err := analysis.AnalyzeFile(req, g.logger())
	if err != nil {
		return err
	}

	id, err := writeFile(output, func(w io.Writer) (string, error) {
		return report.WritePDF(w, r, report.OptionsFromConfig(cfg))
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote report %s to %s\n", id, output)

	if csvPath != "" {
		if _, err := writeFile(csvPath, func(w io.Writer) (string, error) {
			return "", report.WriteMonthly(w, r.Monthly)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote monthly lines to %s\n", csvPath)
	}
	return nil
}

// writeFile creates path and hands it to write. The file is removed if write fails.
func writeFile(path string, write func(io.Writer) (string, error)) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	id, err := write(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return id, nil
}
