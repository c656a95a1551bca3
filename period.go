package respread

import (
	"errors"
	"fmt"
	"time"
)

// Frequency is a calendar step. It is comparable, so a Period built
// from one can serve as a memo key.
type Frequency struct {
	Years  int
	Months int
	Days   int
}

// Common frequencies.
var (
	MonthlyFreq    = Frequency{Months: 1}
	QuarterlyFreq  = Frequency{Months: 3}
	SemiannualFreq = Frequency{Months: 6}
	AnnualFreq     = Frequency{Years: 1}
)

// IsZero reports whether stepping by the frequency goes nowhere.
func (f Frequency) IsZero() bool {
	return f.Years == 0 && f.Months == 0 && f.Days == 0
}

func (f Frequency) step(t time.Time, n int) time.Time {
	return t.AddDate(f.Years*n, f.Months*n, f.Days*n)
}

func (f Frequency) String() string {
	return fmt.Sprintf("%dy%dm%dd", f.Years, f.Months, f.Days)
}

// Period is one numbered interval on a frequency grid anchored at a
// reference date. Period n spans ref+freq*(n-1) to ref+freq*n. The
// value is comparable and immutable; arithmetic returns new values.
type Period struct {
	Num  int
	Ref  time.Time
	Freq Frequency
}

// Monthly returns period num on a monthly grid anchored at ref.
func Monthly(num int, ref time.Time) Period {
	return Period{Num: num, Ref: ref, Freq: MonthlyFreq}
}

// Quarterly returns period num on a quarterly grid anchored at ref.
func Quarterly(num int, ref time.Time) Period {
	return Period{Num: num, Ref: ref, Freq: QuarterlyFreq}
}

// Semiannually returns period num on a semiannual grid anchored at ref.
func Semiannually(num int, ref time.Time) Period {
	return Period{Num: num, Ref: ref, Freq: SemiannualFreq}
}

// Yearly returns period num on an annual grid anchored at ref.
func Yearly(num int, ref time.Time) Period {
	return Period{Num: num, Ref: ref, Freq: AnnualFreq}
}

// Start returns the first date of the period.
func (p Period) Start() time.Time {
	return p.Freq.step(p.Ref, p.Num-1)
}

// End returns the last date of the period.
func (p Period) End() time.Time {
	return p.Freq.step(p.Ref, p.Num)
}

// Add returns the period n steps later on the same grid.
func (p Period) Add(n int) Period {
	return Period{Num: p.Num + n, Ref: p.Ref, Freq: p.Freq}
}

// Sub returns the period n steps earlier on the same grid.
func (p Period) Sub(n int) Period {
	return p.Add(-n)
}

// Contains reports whether t falls within the period, inclusive of
// both endpoints.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && !t.After(p.End())
}

func (p Period) String() string {
	return fmt.Sprintf("Period(num=%d, freq=%s, from=%s, to=%s)",
		p.Num, p.Freq, p.Start().Format("2006-01-02"), p.End().Format("2006-01-02"))
}

// PeriodFromDate returns the period on the given grid containing dt.
// With closedRight, period n covers (start, end]: the reference date
// itself lands in period 0. Otherwise period n covers [start, end) and
// the reference date lands in period 1.
func PeriodFromDate(dt time.Time, freq Frequency, ref time.Time, closedRight bool) (Period, error) {
	if freq.IsZero() || !freq.step(ref, 1).After(ref) {
		return Period{}, errors.New("respread: frequency must advance the start date")
	}

	num := 0
	for {
		start := freq.step(ref, num-1)
		end := freq.step(ref, num)

		var in bool
		if closedRight {
			in = dt.After(start) && !dt.After(end)
		} else {
			in = !dt.Before(start) && dt.Before(end)
		}
		if in {
			return Period{Num: num, Ref: ref, Freq: freq}, nil
		}
		advance := dt.After(end)
		if !closedRight {
			advance = !dt.Before(end)
		}
		if advance {
			num++
		} else {
			num--
		}
	}
}

// PeriodRange returns periods start through end (exclusive) by step on
// the given grid.
func PeriodRange(freq Frequency, ref time.Time, start, end, step int) []Period {
	if step == 0 {
		step = 1
	}
	var out []Period
	if step > 0 {
		for n := start; n < end; n += step {
			out = append(out, Period{Num: n, Ref: ref, Freq: freq})
		}
	} else {
		for n := start; n > end; n += step {
			out = append(out, Period{Num: n, Ref: ref, Freq: freq})
		}
	}
	return out
}
