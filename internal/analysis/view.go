package analysis

import "time"

// View is the JSON form of a Result. Money is rendered as fixed 2-place strings.
type View struct {
	Monthly       []MonthView  `json:"monthly"`
	Totals        TotalsView   `json:"totals"`
	Forecast      ForecastView `json:"forecast"`
	LastMonth     string       `json:"last_month,omitempty"`
	TaxableRatio  string       `json:"taxable_ratio"`
	AnnualIncome  string       `json:"annual_income"`
	Tax           *string      `json:"tax"`
	EffectiveRate string       `json:"effective_rate,omitempty"`
	Breakdown     []SliceView  `json:"breakdown,omitempty"`
	TaxError      string       `json:"tax_error,omitempty"`
	Rows          int          `json:"rows"`
	Skipped       int          `json:"skipped"`
	Coerced       int          `json:"coerced"`
	GeneratedAt   time.Time    `json:"generated_at"`
}

// MonthView is one monthly line.
type MonthView struct {
	Month    string `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
	Count    int    `json:"count"`
}

// TotalsView sums the whole ledger.
type TotalsView struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
	Count    int    `json:"count"`
}

// ForecastView is the projection with its dispersion band.
type ForecastView struct {
	Amount      string  `json:"amount"`
	HorizonDays int     `json:"horizon_days"`
	DaysUsed    int     `json:"days_used"`
	DailyMean   string  `json:"daily_mean"`
	DailyStdDev float64 `json:"daily_stddev"`
	Low         string  `json:"low"`
	High        string  `json:"high"`
}

// SliceView is one taxed slice of income. To is empty for open-ended and surtax slices.
type SliceView struct {
	From    string `json:"from"`
	To      string `json:"to,omitempty"`
	Rate    string `json:"rate"`
	Tax     string `json:"tax"`
	Surtax  bool   `json:"surtax,omitempty"`
	OpenEnd bool   `json:"open_end,omitempty"`
}

// View converts r for JSON output.
func (r *Result) View() View {
	v := View{
		Monthly: make([]MonthView, 0, len(r.Monthly)),
		Totals: TotalsView{
			Income:   r.Totals.Income.StringFixed(2),
			Expenses: r.Totals.Expenses.StringFixed(2),
			Net:      r.Totals.Net.StringFixed(2),
			Count:    r.Totals.Count,
		},
		Forecast: ForecastView{
			Amount:      r.Forecast.Amount.StringFixed(2),
			HorizonDays: r.Forecast.HorizonDays,
			DaysUsed:    r.Forecast.DaysUsed,
			DailyMean:   r.Forecast.DailyMean.StringFixed(2),
			DailyStdDev: r.Forecast.DailyStdDev,
			Low:         r.Forecast.Low.StringFixed(2),
			High:        r.Forecast.High.StringFixed(2),
		},
		LastMonth:    r.LastMonth,
		TaxableRatio: r.TaxableRatio.String(),
		AnnualIncome: r.Income.StringFixed(2),
		Rows:         r.Rows,
		Skipped:      r.Skipped,
		Coerced:      r.Coerced,
		GeneratedAt:  r.GeneratedAt,
	}

	for _, m := range r.Monthly {
		v.Monthly = append(v.Monthly, MonthView{
			Month:    m.Month,
			Income:   m.Income.StringFixed(2),
			Expenses: m.Expenses.StringFixed(2),
			Net:      m.Net.StringFixed(2),
			Count:    m.Count,
		})
	}

	if r.TaxErr != nil {
		v.TaxError = r.TaxErr.Error()
	}
	if r.Tax != nil {
		s := r.Tax.StringFixed(2)
		v.Tax = &s
		v.EffectiveRate = r.EffectiveRate.StringFixed(4)
	}
	for _, s := range r.Breakdown {
		sv := SliceView{
			From:    s.From.StringFixed(2),
			Rate:    s.Rate.String(),
			Tax:     s.Tax.StringFixed(2),
			Surtax:  s.Surtax,
			OpenEnd: s.OpenEnd,
		}
		if !s.OpenEnd && !s.Surtax {
			sv.To = s.To.StringFixed(2)
		}
		v.Breakdown = append(v.Breakdown, sv)
	}
	return v
}
