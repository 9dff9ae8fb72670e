package ledger

import (
	"io"
	"strings"
)

// ChaseParser reads Chase checking CSV exports:
// Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
type ChaseParser struct{}

// chaseColumns maps Chase header names onto ledger columns.
var chaseColumns = map[string]string{
	"posting date": ColDate,
	"description":  ColDescription,
	"amount":       ColAmount,
}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads the export as CSV and renames its header to the ledger columns.
// Chase rows end with a trailing comma, so the record length is not fixed.
func (p *ChaseParser) Parse(r io.Reader, opts Options) (Sheet, error) {
	sheet, err := (&CSVParser{}).Parse(r, opts)
	if err != nil {
		return Sheet{}, err
	}

	for i, row := range sheet.Rows {
		if isBlank(row) {
			continue
		}
		header := make([]string, len(row))
		for j, name := range row {
			key := normalizeHeader(name, j == 0)
			if col, ok := chaseColumns[key]; ok {
				header[j] = col
			} else {
				header[j] = strings.TrimSpace(name)
			}
		}
		sheet.Rows[i] = header
		break
	}
	return sheet, nil
}
