package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/model"
)

// MonthlyHeader is the CSV header for the monthly export.
const MonthlyHeader = "month,income,expenses,net,count"

const (
	numFields   = 5
	colMonth    = 0
	colIncome   = 1
	colExpenses = 2
	colNet      = 3
	colCount    = 4
)

// WriteMonthly writes monthly lines to w, header first.
func WriteMonthly(w io.Writer, monthly model.MonthlyCashflow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(MonthlyHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range monthly {
		if err := cw.Write(MarshalMonth(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadMonthly reads a monthly export written by WriteMonthly.
func ReadMonthly(r io.Reader) (model.MonthlyCashflow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading monthly CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var monthly model.MonthlyCashflow
	for i, rec := range records[1:] {
		m, err := UnmarshalMonth(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		monthly = append(monthly, m)
	}
	return monthly, nil
}

// MarshalMonth converts a MonthNet to a CSV row.
func MarshalMonth(m model.MonthNet) []string {
	row := make([]string, numFields)
	row[colMonth] = m.Month
	row[colIncome] = m.Income.StringFixed(2)
	row[colExpenses] = m.Expenses.StringFixed(2)
	row[colNet] = m.Net.StringFixed(2)
	row[colCount] = strconv.Itoa(m.Count)
	return row
}

// UnmarshalMonth converts a CSV row to a MonthNet.
func UnmarshalMonth(record []string) (model.MonthNet, error) {
	if len(record) != numFields {
		return model.MonthNet{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var m model.MonthNet
	m.Month = record[colMonth]

	var err error
	if m.Income, err = decimal.NewFromString(record[colIncome]); err != nil {
		return model.MonthNet{}, fmt.Errorf("parsing income %q: %w", record[colIncome], err)
	}
	if m.Expenses, err = decimal.NewFromString(record[colExpenses]); err != nil {
		return model.MonthNet{}, fmt.Errorf("parsing expenses %q: %w", record[colExpenses], err)
	}
	if m.Net, err = decimal.NewFromString(record[colNet]); err != nil {
		return model.MonthNet{}, fmt.Errorf("parsing net %q: %w", record[colNet], err)
	}
	if m.Count, err = strconv.Atoi(record[colCount]); err != nil {
		return model.MonthNet{}, fmt.Errorf("parsing count %q: %w", record[colCount], err)
	}
	return m, nil
}
