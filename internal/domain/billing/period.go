package billing

import (
	"fmt"
	"time"

	"github.com/kostman/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LegacyPeriodLayout is the month-bucket format older bills were keyed by.
const LegacyPeriodLayout = "2006-01"

// BillingPeriod is a value object describing the inclusive [Start, End] date
// range a bill covers, together with the number of calendar months it spans.
type BillingPeriod struct {
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	MonthsCovered decimal.Decimal `json:"months_covered"`
}

// NewBillingPeriod creates a period from explicit inclusive start/end dates.
// MonthsCovered is derived from the actual day-counts of the months touched.
func NewBillingPeriod(start, end time.Time) (BillingPeriod, error) {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	if end.Before(start) {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", "Period end date must not precede start date")
	}
	return BillingPeriod{
		Start:         start,
		End:           end,
		MonthsCovered: CalculateMonthsCovered(start, end),
	}, nil
}

// NewBillingPeriodFromStart creates a period covering monthsCovered whole
// calendar months from the start date. The end date is start plus the months,
// not decremented by a day: a 1-month bill from day D covers through the same
// day-of-month one month later.
func NewBillingPeriodFromStart(start time.Time, monthsCovered int) (BillingPeriod, error) {
	if monthsCovered < 1 {
		return BillingPeriod{}, shared.NewDomainError("INVALID_MONTHS", "Months covered must be at least 1")
	}
	start = NormalizeDate(start)
	return BillingPeriod{
		Start:         start,
		End:           CalculatePeriodEndDate(start, monthsCovered),
		MonthsCovered: decimal.NewFromInt(int64(monthsCovered)),
	}, nil
}

// NewBillingPeriodFromLegacy creates a period from a legacy "YYYY-MM" month
// bucket, covering the full calendar month.
func NewBillingPeriodFromLegacy(period string) (BillingPeriod, error) {
	t, err := time.Parse(LegacyPeriodLayout, period)
	if err != nil {
		return BillingPeriod{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Invalid period %q, expected YYYY-MM", period))
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return BillingPeriod{
		Start:         start,
		End:           end,
		MonthsCovered: decimal.NewFromInt(1),
	}, nil
}

// Days returns the inclusive day count of the period
func (p BillingPeriod) Days() int {
	return inclusiveDays(p.Start, p.End)
}

// Overlaps reports whether two inclusive date ranges intersect
func (p BillingPeriod) Overlaps(other BillingPeriod) bool {
	return DateRangesOverlap(p.Start, p.End, other.Start, other.End)
}

// Contains reports whether the date falls inside the period (inclusive bounds)
func (p BillingPeriod) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// String renders the period for error messages and logs
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
}

// NormalizeDate strips the time-of-day component, keeping the calendar date in UTC
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the calendar month containing t
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func inclusiveDays(start, end time.Time) int {
	return int(NormalizeDate(end).Sub(NormalizeDate(start)).Hours()/24) + 1
}

// CalculateMonthsCovered converts an inclusive date range to a fractional
// month count. Rather than assuming 30-day months, it averages the actual
// day-counts of the calendar months the range touches, so a February range
// and a July range of equal day-length yield different fractions. Rounded to
// 2 decimal places with banker's rounding. A range spanning exactly one full
// calendar month yields 1.0.
func CalculateMonthsCovered(start, end time.Time) decimal.Decimal {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	totalDays := inclusiveDays(start, end)

	totalDaysInMonths := 0
	monthCount := 0
	for cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		totalDaysInMonths += DaysInMonth(cursor)
		monthCount++
	}

	avgDaysPerMonth := decimal.NewFromInt(int64(totalDaysInMonths)).Div(decimal.NewFromInt(int64(monthCount)))
	return decimal.NewFromInt(int64(totalDays)).Div(avgDaysPerMonth).RoundBank(2)
}

// CalculatePeriodEndDate adds monthsCovered calendar months to the start
// date. Standard calendar rollover applies for month-end starts (Jan 31 plus
// one month lands in early March).
func CalculatePeriodEndDate(start time.Time, monthsCovered int) time.Time {
	return NormalizeDate(start).AddDate(0, monthsCovered, 0)
}

// ProrationFactor returns the fraction of the billing period a tenancy that
// began on moveIn actually occupies: inclusive days from move-in through the
// period end, over the day-count of the period's starting calendar month.
// Returns 1 when the move-in date falls outside the period. The factor is
// capped at 1 so long periods never inflate the charge.
func ProrationFactor(moveIn, periodStart, periodEnd time.Time) decimal.Decimal {
	moveIn = NormalizeDate(moveIn)
	periodStart = NormalizeDate(periodStart)
	periodEnd = NormalizeDate(periodEnd)

	if moveIn.Before(periodStart) || moveIn.After(periodEnd) {
		return decimal.NewFromInt(1)
	}

	occupied := decimal.NewFromInt(int64(inclusiveDays(moveIn, periodEnd)))
	monthDays := decimal.NewFromInt(int64(DaysInMonth(periodStart)))
	factor := occupied.Div(monthDays)
	if factor.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return factor
}

// DateRangesOverlap reports whether two inclusive date ranges intersect:
// start1 <= end2 && end1 >= start2.
func DateRangesOverlap(start1, end1, start2, end2 time.Time) bool {
	start1, end1 = NormalizeDate(start1), NormalizeDate(end1)
	start2, end2 = NormalizeDate(start2), NormalizeDate(end2)
	return !start1.After(end2) && !end1.Before(start2)
}
