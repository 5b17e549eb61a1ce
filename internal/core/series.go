package core

import "time"

// DailyPoint is one day of the balance time series.
type DailyPoint struct {
	Day        time.Time
	Income     Money
	Expense    Money
	Balance    Money
	Cumulative Money
}

// SeriesRange picks the date range for a time series. Bounded periods
// use their own range. For all time the range is the min..max of the
// rows' valid dates, or a single day anchored at ref when no row has
// one.
func SeriesRange(txs []Transaction, p Period, ref time.Time) (start, end time.Time) {
	if p.Bounded() {
		return p.Start, p.End
	}
	var min, max time.Time
	for _, t := range txs {
		if !t.HasDate() {
			continue
		}
		d := t.Day()
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if max.IsZero() || d.After(max) {
			max = d
		}
	}
	if min.IsZero() {
		ref = ref.UTC()
		day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
		return day, day
	}
	return min, max
}

// BuildDailySeries reconstructs a gap-free daily series over
// [start, end]: per-day income and expense sums (zero where nothing
// happened), the day's balance, and a running cumulative balance seeded
// at zero before the first day. Every calendar day of the range appears
// exactly once, ascending. Rows without a usable date are skipped; they
// cannot be placed on a day.
func BuildDailySeries(txs []Transaction, start, end time.Time) []DailyPoint {
	incomeByDay := make(map[time.Time]int64)
	expenseByDay := make(map[time.Time]int64)
	for _, t := range txs {
		if !t.HasDate() {
			continue
		}
		day := t.Day()
		if t.Kind == Income {
			incomeByDay[day] += t.Amount.Cents
		} else {
			expenseByDay[day] += t.Amount.Cents
		}
	}
	var points []DailyPoint
	var running int64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		in := incomeByDay[d]
		ex := expenseByDay[d]
		running += in - ex
		points = append(points, DailyPoint{
			Day:        d,
			Income:     Money{Cents: in},
			Expense:    Money{Cents: ex},
			Balance:    Money{Cents: in - ex},
			Cumulative: Money{Cents: running},
		})
	}
	return points
}
