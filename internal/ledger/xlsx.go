package ledger

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads Office Open XML workbooks.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads raw cell values from the requested sheet (first sheet by default).
func (p *XLSXParser) Parse(r io.Reader, opts Options) (Sheet, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer xl.Close()

	name := opts.Sheet
	if name == "" {
		name = xl.GetSheetName(0)
	}
	if name == "" {
		return Sheet{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := xl.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	return Sheet{Rows: rows, DateSerials: true}, nil
}
