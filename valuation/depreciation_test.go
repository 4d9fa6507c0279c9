package valuation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func laptop() Inputs {
	return Inputs{
		AcquisitionCost: 120000,
		SalvageValue:    0,
		UsefulLife:      10,
		AcquisitionDate: date(2021, time.January, 1),
	}
}

func TestAnnualStraightLine(t *testing.T) {
	assert.True(t, Annual(laptop()).Equal(dec(12000)))

	in := laptop()
	in.SalvageValue = 20000
	assert.True(t, Annual(in).Equal(dec(10000)))
}

func TestAnnualZeroWhenNoUsefulLife(t *testing.T) {
	in := laptop()
	in.UsefulLife = 0
	assert.True(t, Annual(in).IsZero())

	in.UsefulLife = -3
	assert.True(t, Annual(in).IsZero())
}

func TestAnnualZeroWhenSalvageExceedsCost(t *testing.T) {
	in := laptop()
	in.SalvageValue = 200000
	assert.True(t, Annual(in).IsZero())
}

// Acquired 2021-01-01, reported as at 2023-12-31: two full calendar
// years accumulated at the start of the report year, plus the report
// year itself pro-rated (365 elapsed days inclusive over 365.25). The
// result sits within a few pesos of the nominal 3 x 12000.
func TestAsAtThirdYearEnd(t *testing.T) {
	rep := AsAt(laptop(), date(2023, time.December, 31))

	assert.InDelta(t, 12000, rep.AnnualDepreciation.InexactFloat64(), 0.01)
	assert.InDelta(t, 24000, rep.AccumulatedStart.InexactFloat64(), 0.01)
	assert.InDelta(t, 11991.79, rep.PeriodDepreciation.InexactFloat64(), 0.01)
	assert.InDelta(t, 35991.79, rep.AccumulatedEnd.InexactFloat64(), 0.01)
	assert.InDelta(t, 84008.21, rep.BookValue.InexactFloat64(), 0.01)
	assert.InDelta(t, 36000, rep.AccumulatedEnd.InexactFloat64(), 10)
	assert.InDelta(t, 84000, rep.BookValue.InexactFloat64(), 10)
}

// Acquired mid-year: only the complete anniversary years count at the
// report-year start, never fractions of one.
func TestAsAtStartCountsWholeYearsOnly(t *testing.T) {
	in := laptop()
	in.AcquisitionDate = date(2021, time.June, 15)
	rep := AsAt(in, date(2023, time.December, 31))

	// one complete year by 2023-01-01 (2021-06-15 through 2022-06-15)
	assert.InDelta(t, 12000, rep.AccumulatedStart.InexactFloat64(), 0.01)
	assert.InDelta(t, 12000*365/365.25, rep.PeriodDepreciation.InexactFloat64(), 0.01)
}

func TestAsAtBeforeAcquisitionIsZero(t *testing.T) {
	rep := AsAt(laptop(), date(2020, time.June, 1))
	assert.True(t, rep.AccumulatedStart.IsZero())
	assert.True(t, rep.PeriodDepreciation.IsZero())
	assert.True(t, rep.AccumulatedEnd.IsZero())
	assert.InDelta(t, 120000, rep.BookValue.InexactFloat64(), 0.01)
}

func TestAsAtMidFirstYearProRata(t *testing.T) {
	in := laptop()
	in.AcquisitionDate = date(2023, time.July, 1)
	rep := AsAt(in, date(2023, time.December, 31))

	assert.True(t, rep.AccumulatedStart.IsZero())
	// 2023-07-01 through 2023-12-31 inclusive is 184 elapsed days
	assert.InDelta(t, 12000*184/365.25, rep.PeriodDepreciation.InexactFloat64(), 0.01)
}

func TestAsAtClampsToDepreciableCost(t *testing.T) {
	rep := AsAt(laptop(), date(2045, time.January, 1))
	assert.InDelta(t, 120000, rep.AccumulatedEnd.InexactFloat64(), 0.01)
	assert.InDelta(t, 0, rep.BookValue.InexactFloat64(), 0.01)
}

func TestAsAtClampRespectsSalvage(t *testing.T) {
	in := laptop()
	in.SalvageValue = 20000
	rep := AsAt(in, date(2045, time.January, 1))
	assert.InDelta(t, 100000, rep.AccumulatedEnd.InexactFloat64(), 0.01)
	assert.InDelta(t, 20000, rep.BookValue.InexactFloat64(), 0.01)
}

func TestAsAtSubtractsImpairment(t *testing.T) {
	in := laptop()
	in.ImpairmentLosses = 5000
	rep := AsAt(in, date(2023, time.December, 31))
	assert.InDelta(t, 84008.21-5000, rep.BookValue.InexactFloat64(), 0.01)
}

func TestLedgerCard(t *testing.T) {
	in := laptop()
	rows := LedgerCard(in, []time.Time{
		date(2020, time.June, 1), // before acquisition
		date(2021, time.January, 1),
		date(2023, time.January, 1), // 730 days in
	})
	require.Len(t, rows, 3)

	assert.True(t, rows[0].Accumulated.IsZero())
	assert.InDelta(t, 120000, rows[0].BookValue.InexactFloat64(), 0.01)

	assert.True(t, rows[1].Accumulated.IsZero())

	assert.InDelta(t, 23983.57, rows[2].Accumulated.InexactFloat64(), 0.01)
	assert.InDelta(t, 96016.43, rows[2].BookValue.InexactFloat64(), 0.01)
}

func TestLedgerCardClamps(t *testing.T) {
	rows := LedgerCard(laptop(), []time.Time{date(2045, time.January, 1)})
	require.Len(t, rows, 1)
	assert.InDelta(t, 120000, rows[0].Accumulated.InexactFloat64(), 0.01)
}
