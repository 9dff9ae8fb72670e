package ledger

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// XLSParser reads legacy BIFF (.xls) workbooks.
type XLSParser struct{}

// Format returns the parser name.
func (p *XLSParser) Format() string { return "xls" }

// Parse reads the first sheet. Legacy workbooks are read into memory since the
// decoder needs to seek.
func (p *XLSParser) Parse(r io.Reader, _ Options) (Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("reading xls: %w", err)
	}

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return Sheet{}, fmt.Errorf("opening xls: %w", err)
	}

	sheet := book.GetSheet(0)
	if sheet == nil {
		return Sheet{}, fmt.Errorf("xls workbook has no sheets")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := range cells {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return Sheet{Rows: rows, DateSerials: true}, nil
}
