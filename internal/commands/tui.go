package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/taxflow/internal/ui"
)

func newTUICommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [ledger-or-directory]",
		Short: "Explore a ledger interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			return runTUI(g, target)
		},
	}
}

func runTUI(g *globalOptions, target string) error {
	ratio, err := g.ratioOverride()
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; warnings are shown in the UI instead.
	m := ui.New(ui.Config{
		Target:     target,
		ConfigPath: g.configPath,
		Format:     g.format,
		Load:       g.loadOptions(),
		Ratio:      ratio,
		Log:        zerolog.Nop(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
