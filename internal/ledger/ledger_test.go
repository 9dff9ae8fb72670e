package ledger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestLoadFile_Testdata(t *testing.T) {
	res, err := LoadFile("../../testdata/ledger.csv", "", Options{})
	require.NoError(t, err)

	assert.Equal(t, 9, res.Rows)
	assert.Equal(t, 1, res.Skipped, "the row with an unparsable date is dropped")
	assert.Equal(t, 1, res.Coerced, "the n/a amount becomes zero")
	require.Len(t, res.Transactions, 8)

	// Sorted ascending by date.
	for i := 1; i < len(res.Transactions); i++ {
		assert.False(t, res.Transactions[i].Date.Before(res.Transactions[i-1].Date), "row %d out of order", i)
	}

	first := res.Transactions[0]
	assert.Equal(t, "GITHUB PRO SUBSCRIPTION", first.Description)
	assert.Equal(t, "-4.00", first.Amount.StringFixed(2))
	assert.True(t, first.Date.Equal(date(2025, 1, 3)))

	assert.Equal(t, "OFFICE DEPOT", res.Transactions[1].Description)

	for _, txn := range res.Transactions {
		if txn.Description == "COFFEE" {
			assert.True(t, txn.Amount.IsZero())
		}
		assert.NotEqual(t, "BROKEN ROW", txn.Description)
	}
}

func TestLoad_MissingAmountColumn(t *testing.T) {
	f, err := os.Open("../../testdata/no_amount.csv")
	require.NoError(t, err)
	defer f.Close()

	_, err = Load(f, "csv", Options{})
	require.Error(t, err)

	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "amount", mce.Column)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoad_MissingColumnOrder(t *testing.T) {
	_, err := Load(strings.NewReader("amount,memo\n1,x\n"), "csv", Options{})
	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "date", mce.Column)
}

func TestLoad_BadDateDropsOneRow(t *testing.T) {
	good := "date,description,amount\n2025-01-01,a,1\n2025-01-02,b,2\n"
	bad := "date,description,amount\n2025-01-01,a,1\nNOTADATE,b,2\n"

	goodRes, err := Load(strings.NewReader(good), "csv", Options{})
	require.NoError(t, err)
	badRes, err := Load(strings.NewReader(bad), "csv", Options{})
	require.NoError(t, err)

	assert.Len(t, badRes.Transactions, len(goodRes.Transactions)-1)
	assert.Equal(t, 1, badRes.Skipped)
}

func TestLoad_HeaderOnly(t *testing.T) {
	res, err := Load(strings.NewReader("date,description,amount\n"), "csv", Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Transactions)
	assert.Zero(t, res.Rows)
}

func TestLoad_EmptyFile(t *testing.T) {
	_, err := Load(strings.NewReader(""), "csv", Options{})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoad_BOMAndShortRows(t *testing.T) {
	data := "\ufeffDate,Description,Amount\n2025-01-01,short\n2025-01-02,full,12.50\n"
	res, err := Load(strings.NewReader(data), "csv", Options{})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	assert.True(t, res.Transactions[0].Amount.IsZero())
	assert.Equal(t, 1, res.Coerced)
	assert.Equal(t, "12.50", res.Transactions[1].Amount.StringFixed(2))
}

func TestLoad_StableSort(t *testing.T) {
	data := "date,description,amount\n2025-01-02,later,1\n2025-01-01,first,2\n2025-01-01,second,3\n"
	res, err := Load(strings.NewReader(data), "csv", Options{})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 3)
	assert.Equal(t, "first", res.Transactions[0].Description)
	assert.Equal(t, "second", res.Transactions[1].Description)
	assert.Equal(t, "later", res.Transactions[2].Description)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(strings.NewReader(""), "ods", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw      string
		serials  bool
		dayFirst bool
		want     time.Time
		ok       bool
	}{
		{"2025-01-15", false, false, date(2025, 1, 15), true},
		{"01/15/2025", false, false, date(2025, 1, 15), true},
		{"15/01/2025", false, true, date(2025, 1, 15), true},
		{"03/04/2025", false, true, date(2025, 4, 3), true},
		{"Jan 15, 2025", false, false, date(2025, 1, 15), true},
		{"45672", true, false, date(2025, 1, 15), true},
		{"", false, false, time.Time{}, false},
		{"NOTADATE", false, false, time.Time{}, false},
		{"-5", true, false, time.Time{}, false},
		{"2025-03-09T23:30:00-05:00", false, false, date(2025, 3, 9), true},
		{"2025-03-10T01:00:00+02:00", false, false, date(2025, 3, 10), true},
		{"1/", false, false, time.Time{}, false},
		{"1/2/", false, false, time.Time{}, false},
		{"1.2.", false, false, time.Time{}, false},
		{"4/4 ", false, false, time.Time{}, false},
		{"1/2/", false, true, time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.raw, tt.serials, tt.dayFirst)
		assert.Equal(t, tt.ok, ok, "parseDate(%q)", tt.raw)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "parseDate(%q) = %s", tt.raw, got)
			assert.Equal(t, time.UTC, got.Location(), "parseDate(%q)", tt.raw)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"-4.00", "-4.00", true},
		{" 3500 ", "3500.00", true},
		{"+12.5", "12.50", true},
		{"1e3", "1000.00", true},
		{"n/a", "0.00", false},
		{"", "0.00", false},
		{"1,234.50", "0.00", false},
	}
	for _, tt := range tests {
		got, ok := parseAmount(tt.raw)
		assert.Equal(t, tt.ok, ok, "parseAmount(%q)", tt.raw)
		assert.Equal(t, tt.want, got.StringFixed(2), "parseAmount(%q)", tt.raw)
	}
}

func buildWorkbook(t *testing.T, sheet string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	rows := [][]any{
		{"Date", "Description", "Amount"},
		{"2025-02-01", "RENT", -1200},
		{date(2025, 1, 15), "INVOICE", 3500.5},
		{"garbage", "DROPPED", 1},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXParser(t *testing.T) {
	data := buildWorkbook(t, "Sheet1")

	res, err := Load(bytes.NewReader(data), "xlsx", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Transactions, 2)

	assert.True(t, res.Transactions[0].Date.Equal(date(2025, 1, 15)), "serial date cell: %s", res.Transactions[0].Date)
	assert.Equal(t, "3500.50", res.Transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "RENT", res.Transactions[1].Description)
	assert.Equal(t, "-1200.00", res.Transactions[1].Amount.StringFixed(2))
}

func TestXLSXParser_NamedSheet(t *testing.T) {
	data := buildWorkbook(t, "Ledger")

	res, err := Load(bytes.NewReader(data), "xlsx", Options{Sheet: "Ledger"})
	require.NoError(t, err)
	assert.Len(t, res.Transactions, 2)

	_, err = Load(bytes.NewReader(data), "xlsx", Options{Sheet: "Missing"})
	assert.Error(t, err)
}

func TestXLSParser_Invalid(t *testing.T) {
	_, err := Load(strings.NewReader("not a workbook"), "xls", Options{})
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"chase", "csv", "xls", "xlsx"}, r.Formats())
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get(" xlsx "))
	assert.Nil(t, r.Get("ods"))

	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "csv", FormatFromPath("bank.CSV"))
	assert.Equal(t, "xlsx", FormatFromPath("/tmp/ledger.xlsx"))
	assert.Equal(t, "xls", FormatFromPath("old.xls"))
	assert.Equal(t, "", FormatFromPath("notes.md"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "notes.md", ".hidden.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.csv"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.xlsx", files[0].Name)
	assert.Equal(t, "xlsx", files[0].Format)
	assert.Equal(t, "b.csv", files[1].Name)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestChaseParser(t *testing.T) {
	res, err := LoadFile("../../testdata/chase_checking.csv", "chase", Options{})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 6)
	assert.Zero(t, res.Skipped)

	first := res.Transactions[0]
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", first.Description)
	assert.Equal(t, "-4.00", first.Amount.StringFixed(2))
	assert.Equal(t, date(2025, 1, 3), first.Date)

	acme := res.Transactions[3]
	assert.Equal(t, "ACME CONSULTING INVOICE 1042", acme.Description)
	assert.Equal(t, "3500.00", acme.Amount.StringFixed(2))

	assert.Equal(t, date(2025, 1, 22), res.Transactions[5].Date)
}

func TestChaseParser_NotAChaseExport(t *testing.T) {
	_, err := Load(strings.NewReader("when,what,amount\n01/02/2025,x,1\n"), "chase", Options{})
	var mc *MissingColumnError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, ColDate, mc.Column)
}

func TestLoad_PartialDatesSkipped(t *testing.T) {
	in := "date,description,amount\n2025-01-02,ok,10\n1/2/,partial,5\n4/4 ,partial,7\n"
	res, err := Load(strings.NewReader(in), "csv", Options{})
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 2025, res.Transactions[0].Date.Year())
}
