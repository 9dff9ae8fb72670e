package ledger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cleared-dev/taxflow/internal/model"
)

// Required column names, matched case-insensitively after trimming.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
)

var requiredColumns = []string{ColDate, ColDescription, ColAmount}

// ErrMissingColumn matches any MissingColumnError via errors.Is.
var ErrMissingColumn = errors.New("missing column")

// ErrUnsupportedFormat is returned for a format with no registered parser.
var ErrUnsupportedFormat = errors.New("unsupported ledger format")

// MissingColumnError names a required column absent from the header row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// Is reports whether target is ErrMissingColumn.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Sheet is the raw tabular content of a ledger file. The first non-empty row is the header.
type Sheet struct {
	Rows [][]string
	// DateSerials is set by spreadsheet parsers: numeric date cells are serial day numbers.
	DateSerials bool
}

// Parser reads one tabular format into a Sheet.
type Parser interface {
	Parse(r io.Reader, opts Options) (Sheet, error)
	Format() string
}

// Options tune loading.
type Options struct {
	Sheet    string // spreadsheet sheet name; empty = first sheet
	DayFirst bool   // read ambiguous slashed dates as DD/MM
}

// Result is a normalized ledger plus counts of what normalization discarded.
type Result struct {
	Transactions []model.Transaction
	Rows         int // data rows read (header excluded)
	Skipped      int // rows dropped for an unparsable date
	Coerced      int // amounts that were not numeric and became 0
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(strings.TrimSpace(format))]
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{})
	r.Register(&XLSXParser{})
	r.Register(&XLSParser{})
	r.Register(&ChaseParser{})
	return r
}

// Load parses r as format and normalizes it.
func (r *Registry) Load(rd io.Reader, format string, opts Options) (*Result, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	sheet, err := p.Parse(rd, opts)
	if err != nil {
		return nil, err
	}
	return Normalize(sheet, opts)
}

// Load parses rd with the default registry.
func Load(rd io.Reader, format string, opts Options) (*Result, error) {
	return DefaultRegistry().Load(rd, format, opts)
}

// LoadFile opens path and loads it. An empty format is derived from the extension.
func LoadFile(path, format string, opts Options) (*Result, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	res, err := Load(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return res, nil
}
