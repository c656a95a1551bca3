package respread

import (
	"fmt"
	"time"
)

// DayCount returns the fraction of a year between two dates under some
// day-count convention.
type DayCount func(d1, d2 time.Time) float64

// IsMonthEnd reports whether dt is the last day of its month.
func IsMonthEnd(dt time.Time) bool {
	return dt.Month() != dt.AddDate(0, 0, 1).Month()
}

// Thirty360 is the 30/360 day-count basis, with the usual February
// month-end adjustments.
func Thirty360(dt1, dt2 time.Time) float64 {
	y1, m1, d1 := dt1.Year(), int(dt1.Month()), dt1.Day()
	y2, m2, d2 := dt2.Year(), int(dt2.Month()), dt2.Day()

	if IsMonthEnd(dt1) && m1 == 2 && IsMonthEnd(dt2) && m2 == 2 {
		d2 = 30
	}
	if IsMonthEnd(dt1) && m1 == 2 {
		d1 = 30
	}
	if d2 == 31 && (d1 == 30 || d1 == 31) {
		d2 = 30
	}
	if d1 == 31 {
		d1 = 30
	}

	days := 360*(y2-y1) + 30*(m2-m1) + (d2 - d1)
	return float64(days) / 360
}

// Actual360 is the actual/360 day-count basis.
func Actual360(dt1, dt2 time.Time) float64 {
	return dt2.Sub(dt1).Hours() / 24 / 360
}

// Compounded returns the compounded growth of rate between fromDt and
// toDt, compounding on the period grid anchored at compRef with step
// compFreq, accruing within each period under dayCount.
func Compounded(rate float64, fromDt, toDt time.Time, compRef time.Time, compFreq Frequency, dayCount DayCount) (float64, error) {
	period, err := PeriodFromDate(fromDt, compFreq, compRef, true)
	if err != nil {
		return 0, err
	}

	compounded := 1.0
	for {
		start, end := period.Start(), period.End()
		if start.Before(fromDt) {
			start = fromDt
		}
		if end.After(toDt) {
			end = toDt
		}
		yf := dayCount(start, end)
		compounded *= 1 + yf*rate

		if !period.End().Before(toDt) {
			break
		}
		period = period.Add(1)
	}
	return compounded - 1, nil
}

// DateRange returns dates from start to end inclusive, stepping by
// freq. A frequency that does not converge from start to end fails.
func DateRange(start, end time.Time, freq Frequency) ([]time.Time, error) {
	out := []time.Time{start}
	curr := start

	for !curr.Equal(end) {
		next := freq.step(curr, 1)
		if next.After(end) {
			next = end
		}
		if absDur(end.Sub(curr)) <= absDur(end.Sub(next)) {
			return nil, fmt.Errorf("respread: freq %s does not converge from %s to %s",
				freq, start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
		curr = next
		out = append(out, curr)
	}
	return out, nil
}

func absDur(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
