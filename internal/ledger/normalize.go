package ledger

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/taxflow/internal/model"
)

// Excel stores dates as days since 1899-12-30; 2958465 is 9999-12-31.
const (
	minDateSerial = 1
	maxDateSerial = 2958465
)

// Parsed text dates outside these years are partial or garbage ("1/2/" parses as year 0).
const (
	minYear = 1900
	maxYear = 9999
)

var dayFirstLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
	"02.01.2006",
	"2.1.2006",
	"02-01-2006",
}

// Normalize maps a raw sheet onto transactions. Rows whose date cannot be parsed are dropped
// and counted; non-numeric amounts become zero and are counted.
func Normalize(sheet Sheet, opts Options) (*Result, error) {
	header, body := splitHeader(sheet.Rows)

	index := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name, i == 0)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}

	res := &Result{}
	for _, row := range body {
		if isBlank(row) {
			continue
		}
		res.Rows++

		date, ok := parseDate(cell(row, index[ColDate]), sheet.DateSerials, opts.DayFirst)
		if !ok {
			res.Skipped++
			continue
		}

		amount, ok := parseAmount(cell(row, index[ColAmount]))
		if !ok {
			res.Coerced++
		}

		res.Transactions = append(res.Transactions, model.Transaction{
			Date:        date,
			Description: strings.TrimSpace(cell(row, index[ColDescription])),
			Amount:      amount,
		})
	}

	sort.SliceStable(res.Transactions, func(i, j int) bool {
		return res.Transactions[i].Date.Before(res.Transactions[j].Date)
	})
	return res, nil
}

func splitHeader(rows [][]string) ([]string, [][]string) {
	for i, row := range rows {
		if !isBlank(row) {
			return row, rows[i+1:]
		}
	}
	return nil, nil
}

func normalizeHeader(name string, first bool) string {
	if first {
		name = strings.TrimPrefix(name, "\ufeff")
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts any layout dateparse understands, day-first slashed dates when asked,
// and spreadsheet serial numbers when serials is set.
func parseDate(raw string, serials, dayFirst bool) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if serials {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			if f < minDateSerial || f > maxDateSerial {
				return time.Time{}, false
			}
			t, err := excelize.ExcelDateToTime(f, false)
			if err != nil {
				return time.Time{}, false
			}
			return midnight(t), true
		}
	}

	if dayFirst {
		for _, layout := range dayFirstLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return calendarDate(t)
			}
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return calendarDate(t)
}

// calendarDate keeps the date as written, dropping clock and offset, and rejects
// years outside [minYear, maxYear].
func calendarDate(t time.Time) (time.Time, bool) {
	if y := t.Year(); y < minYear || y > maxYear {
		return time.Time{}, false
	}
	return midnight(t), true
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseAmount returns the numeric value of raw, or zero and false when it is not a number.
func parseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "+")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
