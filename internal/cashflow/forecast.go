package cashflow

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/cleared-dev/taxflow/internal/model"
)

// Defaults for the naive projection: average the last 90 active days, project 30 days.
const (
	DefaultWindowDays  = 90
	DefaultHorizonDays = 30
)

// ForecastOptions configures Project. Zero values mean the defaults.
type ForecastOptions struct {
	WindowDays  int
	HorizonDays int
}

func (o ForecastOptions) withDefaults() ForecastOptions {
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.HorizonDays <= 0 {
		o.HorizonDays = DefaultHorizonDays
	}
	return o
}

// Projection is a constant-rate projection of future net cash flow.
// Low and High are Amount -/+ one daily standard deviation scaled by sqrt(horizon);
// they describe how noisy the history is and are not a confidence interval.
type Projection struct {
	Amount      decimal.Decimal
	HorizonDays int
	DaysUsed    int // distinct days averaged, at most WindowDays
	DailyMean   decimal.Decimal
	DailyStdDev float64
	Low         decimal.Decimal
	High        decimal.Decimal
}

// Forecast returns mean(daily net over the trailing <=90 active days) x 30, rounded to 2 places.
// An empty transaction set forecasts zero.
func Forecast(txns []model.Transaction) decimal.Decimal {
	return Project(txns, ForecastOptions{}).Amount
}

// Project computes the projection with its dispersion band.
func Project(txns []model.Transaction, opts ForecastOptions) Projection {
	opts = opts.withDefaults()
	p := Projection{HorizonDays: opts.HorizonDays}

	days := Daily(txns)
	if len(days) == 0 {
		return p
	}
	if len(days) > opts.WindowDays {
		days = days[len(days)-opts.WindowDays:]
	}

	sum := decimal.Zero
	values := make([]float64, len(days))
	for i, d := range days {
		sum = sum.Add(d.Net)
		values[i] = d.Net.InexactFloat64()
	}
	n := decimal.NewFromInt(int64(len(days)))
	horizon := decimal.NewFromInt(int64(opts.HorizonDays))

	p.DaysUsed = len(days)
	p.Amount = sum.Mul(horizon).Div(n).Round(2)
	p.DailyMean = sum.Div(n).Round(2)

	if len(values) > 1 {
		p.DailyStdDev = stat.StdDev(values, nil)
	}
	spread := decimal.NewFromFloat(p.DailyStdDev * math.Sqrt(float64(opts.HorizonDays))).Round(2)
	p.Low = p.Amount.Sub(spread)
	p.High = p.Amount.Add(spread)
	return p
}
