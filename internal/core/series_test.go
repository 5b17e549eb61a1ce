package core

import (
	"testing"
	"time"
)

func TestBuildDailySeriesGapFree(t *testing.T) {
	p := ResolvePeriod(ThisMonth, day(2024, 3, 15))
	txs := []Transaction{
		tx("a", 200000, "Salary", Income, day(2024, 3, 1)),
		tx("a", 1000, "Food", Expense, day(2024, 3, 1)),
		tx("a", 5000, "Food", Expense, day(2024, 3, 20)),
	}
	points := BuildDailySeries(txs, p.Start, p.End)
	if len(points) != 31 {
		t.Fatalf("expected 31 points for March, got %d", len(points))
	}
	for i, pt := range points {
		if !pt.Day.Equal(p.Start.AddDate(0, 0, i)) {
			t.Fatalf("day %d out of order: %v", i, pt.Day)
		}
		if pt.Balance.Cents != pt.Income.Cents-pt.Expense.Cents {
			t.Fatalf("day %d balance mismatch: %+v", i, pt)
		}
	}
	first := points[0]
	if first.Income.Cents != 200000 || first.Expense.Cents != 1000 || first.Cumulative.Cents != 199000 {
		t.Fatalf("first day wrong: %+v", first)
	}
	// A quiet day carries zeros and the running balance forward.
	quiet := points[10]
	if quiet.Income.Cents != 0 || quiet.Expense.Cents != 0 || quiet.Cumulative.Cents != 199000 {
		t.Fatalf("quiet day wrong: %+v", quiet)
	}
	last := points[len(points)-1]
	if last.Cumulative.Cents != 194000 {
		t.Fatalf("final cumulative wrong: %+v", last)
	}
}

func TestSeriesCumulativeRoundTrip(t *testing.T) {
	// Over a range covering exactly the data's span, the last
	// cumulative balance equals the net balance of the date-valid set.
	txs := []Transaction{
		tx("a", 500, "Food", Expense, day(2024, 3, 2)),
		tx("a", 10000, "Salary", Income, day(2024, 3, 5)),
		tx("a", 250, "Food", Expense, day(2024, 3, 9)),
		tx("a", 999, "Food", Expense, time.Time{}), // no date, excluded from the series
	}
	start, end := SeriesRange(txs, ResolvePeriod(AllTime, day(2024, 3, 15)), day(2024, 3, 15))
	if !start.Equal(day(2024, 3, 2)) || !end.Equal(day(2024, 3, 9)) {
		t.Fatalf("derived range wrong: [%v, %v]", start, end)
	}
	points := BuildDailySeries(txs, start, end)
	if len(points) != 8 {
		t.Fatalf("expected 8 points, got %d", len(points))
	}
	dated := make([]Transaction, 0, len(txs))
	for _, x := range txs {
		if x.HasDate() {
			dated = append(dated, x)
		}
	}
	want := NetBalance(dated).Cents
	if got := points[len(points)-1].Cumulative.Cents; got != want {
		t.Fatalf("cumulative %d != net balance %d", got, want)
	}
}

func TestSeriesRangeEmptyAnchorsAtNow(t *testing.T) {
	ref := time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)
	start, end := SeriesRange(nil, ResolvePeriod(AllTime, ref), ref)
	if !start.Equal(day(2024, 3, 15)) || !end.Equal(day(2024, 3, 15)) {
		t.Fatalf("expected single-day range at reference, got [%v, %v]", start, end)
	}
	points := BuildDailySeries(nil, start, end)
	if len(points) != 1 || points[0].Cumulative.Cents != 0 {
		t.Fatalf("expected one zero point, got %+v", points)
	}
}

func TestSeriesRangeBoundedPeriodWins(t *testing.T) {
	p := ResolvePeriod(ThisWeek, day(2024, 3, 13))
	txs := []Transaction{tx("a", 100, "Food", Expense, day(2024, 3, 12))}
	start, end := SeriesRange(txs, p, day(2024, 3, 13))
	if !start.Equal(p.Start) || !end.Equal(p.End) {
		t.Fatalf("bounded period range not used: [%v, %v]", start, end)
	}
}
