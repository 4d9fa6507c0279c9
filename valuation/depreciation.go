// Package valuation computes straight-line depreciation and book values
// for reporting. Everything here is a pure function of acquisition data
// and a report date; nothing reads or writes the store.
package valuation

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysPerYear averages leap years.
var daysPerYear = decimal.NewFromFloat(365.25)

// Inputs is the acquisition data a depreciation report derives from.
type Inputs struct {
	AcquisitionCost  float64
	SalvageValue     float64
	UsefulLife       int // years
	ImpairmentLosses float64
	AcquisitionDate  time.Time
}

// Report is a point-in-time depreciation summary.
type Report struct {
	AnnualDepreciation decimal.Decimal
	AccumulatedStart   decimal.Decimal // at the start of the report year
	PeriodDepreciation decimal.Decimal // pro-rata within the report year
	AccumulatedEnd     decimal.Decimal
	BookValue          decimal.Decimal
}

// CardRow is one line of a ledger-card view: depreciation accumulated up
// to an event date.
type CardRow struct {
	Date        time.Time
	Accumulated decimal.Decimal
	BookValue   decimal.Decimal
}

// Annual returns the straight-line annual depreciation
// (cost - salvage) / usefulLife, zero when usefulLife <= 0.
func Annual(in Inputs) decimal.Decimal {
	if in.UsefulLife <= 0 {
		return decimal.Zero
	}
	return depreciableCost(in).Div(decimal.NewFromInt(int64(in.UsefulLife)))
}

func depreciableCost(in Inputs) decimal.Decimal {
	d := decimal.NewFromFloat(in.AcquisitionCost).Sub(decimal.NewFromFloat(in.SalvageValue))
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// clamp keeps accumulated depreciation within [0, depreciableCost].
func clamp(v, max decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(max) {
		return max
	}
	return v
}

func days(from, to time.Time) decimal.Decimal {
	if !to.After(from) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(to.Sub(from).Hours() / 24)
}

// fullYears counts complete years from the acquisition anniversary.
func fullYears(from, to time.Time) int64 {
	if !to.After(from) {
		return 0
	}
	y := to.Year() - from.Year()
	if from.AddDate(y, 0, 0).After(to) {
		y--
	}
	return int64(y)
}

// AsAt computes the depreciation report for a given as-of date.
// Accumulated depreciation at the start of the report year is
// annual x full calendar years elapsed, and the partial period inside
// the report year is pro-rated by elapsed days (counting through the
// end of the as-of day) over a 365.25-day year. Both are clamped to
// depreciable cost.
func AsAt(in Inputs, asOf time.Time) Report {
	annual := Annual(in)
	depreciable := depreciableCost(in)

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())

	yearsAtStart := decimal.NewFromInt(fullYears(in.AcquisitionDate, yearStart))
	accumStart := clamp(annual.Mul(yearsAtStart), depreciable)

	periodFrom := yearStart
	if in.AcquisitionDate.After(yearStart) {
		periodFrom = in.AcquisitionDate
	}
	elapsed := days(periodFrom, asOf).Add(decimal.NewFromInt(1))
	if asOf.Before(periodFrom) {
		elapsed = decimal.Zero
	}
	period := annual.Mul(elapsed).Div(daysPerYear)

	accumEnd := clamp(accumStart.Add(period), depreciable)

	book := decimal.NewFromFloat(in.AcquisitionCost).
		Sub(accumEnd).
		Sub(decimal.NewFromFloat(in.ImpairmentLosses))

	return Report{
		AnnualDepreciation: annual,
		AccumulatedStart:   accumStart,
		PeriodDepreciation: accumEnd.Sub(accumStart),
		AccumulatedEnd:     accumEnd,
		BookValue:          book,
	}
}

// LedgerCard computes depreciation incrementally at each event date
// (audit or repair-history dates), using daily depreciation
// annual / 365.25 applied from the acquisition date. Event dates before
// acquisition accumulate nothing.
func LedgerCard(in Inputs, eventDates []time.Time) []CardRow {
	annual := Annual(in)
	depreciable := depreciableCost(in)
	daily := annual.Div(daysPerYear)
	cost := decimal.NewFromFloat(in.AcquisitionCost)
	impairment := decimal.NewFromFloat(in.ImpairmentLosses)

	rows := make([]CardRow, 0, len(eventDates))
	for _, d := range eventDates {
		accum := clamp(daily.Mul(days(in.AcquisitionDate, d)), depreciable)
		rows = append(rows, CardRow{
			Date:        d,
			Accumulated: accum,
			BookValue:   cost.Sub(accum).Sub(impairment),
		})
	}
	return rows
}
