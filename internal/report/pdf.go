// Package report exports an analysis result as a PDF document or a monthly CSV.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/analysis"
	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/money"
)

// Disclaimer is printed at the foot of every report.
const Disclaimer = "Estimates only. This report is not tax advice; consult a qualified professional."

const (
	fontFamily = "Helvetica"
	utf8Family = "ReportFont"
	lineH      = 6.0
	barH       = 4.0
	labelW     = 22.0
)

var (
	incomeRGB  = [3]int{46, 139, 87}
	expenseRGB = [3]int{200, 60, 60}
	headerRGB  = [3]int{230, 230, 230}
)

// Options controls the PDF output.
type Options struct {
	Title string
	// Symbol is used with a UTF-8 font. Core fonts can't encode most currency
	// signs, so Code is printed instead when FontPath is empty.
	Symbol   string
	Code     string
	FontPath string
	ID       string // generated when empty

	uncompressed bool
}

// OptionsFromConfig derives PDF options from the loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:    cfg.Report.Title,
		Symbol:   cfg.Currency.Symbol,
		Code:     cfg.Currency.Code,
		FontPath: cfg.Report.Font,
	}
}

type pdfWriter struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
	prefix string
}

// WritePDF renders r as a single-report PDF to w and returns the report ID.
func WritePDF(w io.Writer, r *analysis.Result, opts Options) (string, error) {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	title := opts.Title
	if title == "" {
		title = "TaxFlow report"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!opts.uncompressed)
	pdf.SetTitle(title, true)
	pdf.SetCreator("taxflow", false)
	pdf.SetSubject("report "+id, false)
	if !r.GeneratedAt.IsZero() {
		pdf.SetCreationDate(r.GeneratedAt)
	}

	pw := &pdfWriter{pdf: pdf, family: fontFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if opts.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", opts.FontPath)
		pdf.AddUTF8Font(utf8Family, "B", opts.FontPath)
		pw.family = utf8Family
		pw.tr = func(s string) string { return s }
		pw.prefix = opts.Symbol
	} else if opts.Code != "" {
		pw.prefix = opts.Code + " "
	}

	pdf.AddPage()
	pw.header(title, id, r.GeneratedAt)
	pw.monthlyTable(r)
	pw.barChart(r)
	pw.metrics(r)
	pw.breakdown(r)
	pw.footer(r)

	if err := pdf.Output(w); err != nil {
		return "", fmt.Errorf("rendering PDF: %w", err)
	}
	return id, nil
}

func (pw *pdfWriter) money(d decimal.Decimal) string {
	return money.Format(d, pw.prefix)
}

func (pw *pdfWriter) text(w float64, s, align string, fill bool) {
	pw.pdf.CellFormat(w, lineH, pw.tr(s), "", 0, align, fill, 0, "")
}

func (pw *pdfWriter) line(s string) {
	pw.pdf.CellFormat(0, lineH, pw.tr(s), "", 1, "L", false, 0, "")
}

func (pw *pdfWriter) section(s string) {
	pw.pdf.Ln(3)
	pw.pdf.SetFont(pw.family, "B", 12)
	pw.line(s)
	pw.pdf.SetFont(pw.family, "", 10)
}

func (pw *pdfWriter) header(title, id string, at time.Time) {
	pw.pdf.SetFont(pw.family, "B", 18)
	pw.pdf.CellFormat(0, 10, pw.tr(title), "", 1, "L", false, 0, "")
	pw.pdf.SetFont(pw.family, "", 9)
	pw.line("Generated " + at.Format("2006-01-02 15:04 MST"))
	pw.line("Report ID " + id)
}

func (pw *pdfWriter) monthlyTable(r *analysis.Result) {
	pw.section("Monthly cash flow")
	if len(r.Monthly) == 0 {
		pw.line("No transactions.")
		return
	}

	cols := []float64{30, 40, 40, 40, 20}
	pw.pdf.SetFont(pw.family, "B", 10)
	pw.pdf.SetFillColor(headerRGB[0], headerRGB[1], headerRGB[2])
	for i, h := range []string{"Month", "Income", "Expenses", "Net", "Rows"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pw.text(cols[i], h, align, true)
	}
	pw.pdf.Ln(-1)

	pw.pdf.SetFont(pw.family, "", 10)
	for _, m := range r.Monthly {
		pw.text(cols[0], m.Month, "L", false)
		pw.text(cols[1], pw.money(m.Income), "R", false)
		pw.text(cols[2], pw.money(m.Expenses), "R", false)
		pw.text(cols[3], pw.money(m.Net), "R", false)
		pw.text(cols[4], fmt.Sprintf("%d", m.Count), "R", false)
		pw.pdf.Ln(-1)
	}
	pw.pdf.SetFont(pw.family, "B", 10)
	pw.text(cols[0], "Total", "L", false)
	pw.text(cols[1], pw.money(r.Totals.Income), "R", false)
	pw.text(cols[2], pw.money(r.Totals.Expenses), "R", false)
	pw.text(cols[3], pw.money(r.Totals.Net), "R", false)
	pw.text(cols[4], fmt.Sprintf("%d", r.Totals.Count), "R", false)
	pw.pdf.Ln(-1)
	pw.pdf.SetFont(pw.family, "", 10)
}

// barChart draws one horizontal bar per month. With any negative month the zero
// axis sits in the middle of the plot area.
func (pw *pdfWriter) barChart(r *analysis.Result) {
	if len(r.Monthly) == 0 {
		return
	}
	pw.section("Monthly net")

	maxAbs := decimal.Zero
	negative := false
	for _, m := range r.Monthly {
		maxAbs = decimal.Max(maxAbs, m.Net.Abs())
		negative = negative || m.Net.IsNegative()
	}

	left, _, right, bottom := pw.pdf.GetMargins()
	pageW, pageH := pw.pdf.GetPageSize()
	area := pageW - left - right - labelW
	axis := left + labelW
	if negative {
		area /= 2
		axis += area
	}

	for _, m := range r.Monthly {
		if pw.pdf.GetY()+lineH > pageH-bottom {
			pw.pdf.AddPage()
		}
		y := pw.pdf.GetY()
		pw.pdf.SetX(left)
		pw.text(labelW, m.Month, "L", false)

		width := 0.0
		if maxAbs.IsPositive() {
			width = m.Net.Abs().Div(maxAbs).InexactFloat64() * area
		}
		x := axis
		rgb := incomeRGB
		if m.Net.IsNegative() {
			x = axis - width
			rgb = expenseRGB
		}
		pw.pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		if width > 0 {
			pw.pdf.Rect(x, y+(lineH-barH)/2, width, barH, "F")
		}
		pw.pdf.SetY(y + lineH)
	}
}

func (pw *pdfWriter) metrics(r *analysis.Result) {
	pw.section("Projection and tax")
	pw.line(fmt.Sprintf("%d-day forecast: %s (range %s to %s, %d active days)",
		r.Forecast.HorizonDays, pw.money(r.Forecast.Amount),
		pw.money(r.Forecast.Low), pw.money(r.Forecast.High), r.Forecast.DaysUsed))

	if r.LastMonth == "" {
		pw.line("Annualized income: no months to annualize")
	} else {
		pw.line(fmt.Sprintf("Annualized taxable income from %s at ratio %s: %s",
			r.LastMonth, r.TaxableRatio.String(), pw.money(r.Income)))
	}

	if r.Tax == nil {
		pw.line("Tax estimate unavailable: " + errString(r.TaxErr))
		return
	}
	pw.line(fmt.Sprintf("Estimated annual tax: %s (effective rate %s)",
		pw.money(*r.Tax), money.Percent(r.EffectiveRate)))
}

func (pw *pdfWriter) breakdown(r *analysis.Result) {
	if len(r.Breakdown) == 0 {
		return
	}
	pw.section("Bracket breakdown")
	for _, s := range r.Breakdown {
		var band string
		switch {
		case s.Surtax:
			band = "surtax above " + pw.money(s.From)
		case s.OpenEnd:
			band = "above " + pw.money(s.From)
		default:
			band = pw.money(s.From) + " to " + pw.money(s.To)
		}
		pw.text(100, band, "L", false)
		pw.text(30, money.Percent(s.Rate), "R", false)
		pw.text(40, pw.money(s.Tax), "R", false)
		pw.pdf.Ln(-1)
	}
}

func (pw *pdfWriter) footer(r *analysis.Result) {
	pw.pdf.Ln(4)
	pw.pdf.SetFont(pw.family, "", 9)
	if r.Skipped > 0 {
		pw.line(fmt.Sprintf("%d of %d rows were skipped because their date could not be read.", r.Skipped, r.Rows))
	}
	if r.Coerced > 0 {
		pw.line(fmt.Sprintf("%d rows had a non-numeric amount and were counted as zero.", r.Coerced))
	}
	if pw.family == fontFamily {
		pw.pdf.SetFont(pw.family, "I", 9)
	}
	pw.line(Disclaimer)
}

func errString(err error) string {
	if err == nil {
		return "unknown reason"
	}
	return err.Error()
}
