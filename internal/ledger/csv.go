package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser reads comma-separated ledgers.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads all records. Rows may have any number of fields.
func (p *CSVParser) Parse(r io.Reader, _ Options) (Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("reading CSV: %w", err)
	}
	return Sheet{Rows: records}, nil
}
