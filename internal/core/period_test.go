package core

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriodMonth(t *testing.T) {
	cases := []struct {
		ref        time.Time
		start, end time.Time
	}{
		{day(2024, 3, 15), day(2024, 3, 1), day(2024, 3, 31)},
		{day(2024, 2, 10), day(2024, 2, 1), day(2024, 2, 29)}, // leap February
		{day(2023, 2, 10), day(2023, 2, 1), day(2023, 2, 28)},
		{day(2024, 12, 31), day(2024, 12, 1), day(2024, 12, 31)},
	}
	for _, tc := range cases {
		p := ResolvePeriod(ThisMonth, tc.ref)
		if !p.Start.Equal(tc.start) || !p.End.Equal(tc.end) {
			t.Fatalf("ref %v: got [%v, %v] want [%v, %v]", tc.ref, p.Start, p.End, tc.start, tc.end)
		}
		if p.Label != "this month" {
			t.Fatalf("label %q", p.Label)
		}
	}
}

func TestResolvePeriodWeekISO(t *testing.T) {
	// Wednesday 2024-03-13 lives in the ISO week Mon 2024-03-11 .. Sun 2024-03-17.
	cases := []struct {
		ref        time.Time
		start, end time.Time
	}{
		{day(2024, 3, 13), day(2024, 3, 11), day(2024, 3, 17)},
		{day(2024, 3, 11), day(2024, 3, 11), day(2024, 3, 17)}, // Monday itself
		{day(2024, 3, 17), day(2024, 3, 11), day(2024, 3, 17)}, // Sunday belongs to the prior Monday
		{day(2025, 1, 1), day(2024, 12, 30), day(2025, 1, 5)},  // week spans the year boundary
	}
	for _, tc := range cases {
		p := ResolvePeriod(ThisWeek, tc.ref)
		if !p.Start.Equal(tc.start) || !p.End.Equal(tc.end) {
			t.Fatalf("ref %v: got [%v, %v] want [%v, %v]", tc.ref, p.Start, p.End, tc.start, tc.end)
		}
		if p.Start.Weekday() != time.Monday || p.End.Weekday() != time.Sunday {
			t.Fatalf("ref %v: not Monday..Sunday", tc.ref)
		}
	}
}

func TestResolvePeriodAll(t *testing.T) {
	p := ResolvePeriod(AllTime, day(2024, 3, 13))
	if p.Bounded() {
		t.Fatalf("all time should be unbounded")
	}
	if p.Label != "all time" {
		t.Fatalf("label %q", p.Label)
	}
	if !p.Contains(day(1999, 1, 1)) {
		t.Fatalf("all time should contain any day")
	}
	if p.Days() != nil {
		t.Fatalf("unbounded period should have nil day enumeration")
	}
}

func TestPeriodDays(t *testing.T) {
	p := ResolvePeriod(ThisWeek, day(2024, 3, 13))
	days := p.Days()
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("gap or duplicate at %d: %v -> %v", i, days[i-1], days[i])
		}
	}
}

func TestParsePeriodSelector(t *testing.T) {
	cases := []struct {
		in   string
		want PeriodSelector
	}{
		{"month", ThisMonth},
		{"MONTH", ThisMonth},
		{"week", ThisWeek},
		{"all", AllTime},
		{"", AllTime},
		{"bogus", AllTime},
	}
	for _, tc := range cases {
		if got := ParsePeriodSelector(tc.in); got != tc.want {
			t.Fatalf("%q: got %v want %v", tc.in, got, tc.want)
		}
	}
}
