// Package ui is the interactive terminal front end.
package ui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/analysis"
	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/ledger"
	"github.com/cleared-dev/taxflow/internal/report"
)

// Config is what the TUI needs to locate and analyze ledgers.
type Config struct {
	Target     string // ledger file, or directory to pick one from
	ConfigPath string
	Format     string
	Load       ledger.Options
	Ratio      *decimal.Decimal
	Log        zerolog.Logger
}

type screen int

const (
	screenPicker screen = iota
	screenAnalysis
)

type Model struct {
	cfg Config
	dir string // set when started on a directory

	screen screen
	files  []ledger.FileInfo
	cursor int

	ledgerPath string
	conf       *config.Config
	result     *analysis.Result
	err        error
	status     string
	statusErr  bool

	editing bool
	ratio   textinput.Model
	table   table.Model
	help    help.Model

	width  int
	height int
}

// Messages

type filesMsg struct {
	files []ledger.FileInfo
	err   error
}

type analyzedMsg struct {
	path   string
	conf   *config.Config
	result *analysis.Result
	err    error
}

type exportedMsg struct {
	path string
	id   string
	err  error
}

func New(cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "taxable ratio: "
	ti.Placeholder = "0..1"
	ti.CharLimit = 8
	ti.Width = 8

	m := Model{
		cfg:   cfg,
		ratio: ti,
		table: newMonthlyTable(),
		help:  help.New(),
	}

	target := cfg.Target
	if target == "" {
		target = "."
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		m.dir = target
		m.screen = screenPicker
	} else {
		m.ledgerPath = target
		m.screen = screenAnalysis
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenPicker {
		return scanCmd(m.dir)
	}
	return m.analyzeCmd(m.ledgerPath)
}

// Commands

func scanCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		files, err := ledger.Scan(dir)
		return filesMsg{files, err}
	}
}

// analyzeCmd re-reads the ledger and config from disk.
func (m Model) analyzeCmd(path string) tea.Cmd {
	req := analysis.Request{
		LedgerPath: path,
		Format:     m.cfg.Format,
		Load:       m.cfg.Load,
		ConfigPath: m.cfg.ConfigPath,
		Ratio:      m.cfg.Ratio,
	}
	log := m.cfg.Log
	return func() tea.Msg {
		conf, result, err := analysis.AnalyzeFile(req, log)
		return analyzedMsg{path: path, conf: conf, result: result, err: err}
	}
}

func exportCmd(ledgerPath string, conf *config.Config, result *analysis.Result) tea.Cmd {
	return func() tea.Msg {
		path := reportPath(ledgerPath)
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{path: path, err: err}
		}
		id, err := report.WritePDF(f, result, report.OptionsFromConfig(conf))
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
		return exportedMsg{path: path, id: id, err: err}
	}
}

// reportPath puts the PDF next to the ledger: data/bank.csv -> data/bank-report.pdf.
func reportPath(ledgerPath string) string {
	base := strings.TrimSuffix(ledgerPath, filepath.Ext(ledgerPath))
	return base + "-report.pdf"
}
