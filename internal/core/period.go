package core

import (
	"strings"
	"time"
)

// PeriodSelector names the supported reporting windows.
type PeriodSelector int

const (
	AllTime PeriodSelector = iota
	ThisMonth
	ThisWeek
)

// ParsePeriodSelector maps the command-layer period argument to a
// selector; anything unrecognized falls back to all time.
func ParsePeriodSelector(s string) PeriodSelector {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month":
		return ThisMonth
	case "week":
		return ThisWeek
	default:
		return AllTime
	}
}

// Period is a resolved, labeled reporting window. Start and End are
// inclusive UTC calendar days; for AllTime both are zero and Bounded is
// false.
type Period struct {
	Selector PeriodSelector
	Start    time.Time
	End      time.Time
	Label    string
}

// Bounded reports whether the period carries a concrete date range.
func (p Period) Bounded() bool { return p.Selector != AllTime }

// Contains reports whether a UTC day falls inside the period. Unbounded
// periods contain every day, including the unknown-date sentinel.
func (p Period) Contains(day time.Time) bool {
	if !p.Bounded() {
		return true
	}
	return !day.Before(p.Start) && !day.After(p.End)
}

// Days returns every calendar day of the range, inclusive both ends and
// ascending. Nil for unbounded periods.
func (p Period) Days() []time.Time {
	if !p.Bounded() {
		return nil
	}
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ResolvePeriod turns a selector plus a reference instant into a
// concrete period. Month spans the first through the true last day of
// the reference month (leap February included). Week follows ISO 8601:
// the Monday through Sunday containing the reference, wherever in the
// week it falls.
func ResolvePeriod(sel PeriodSelector, ref time.Time) Period {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	switch sel {
	case ThisMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return Period{Selector: ThisMonth, Start: start, End: end, Label: "this month"}
	case ThisWeek:
		// Monday start; Go's Sunday is 0.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return Period{Selector: ThisWeek, Start: start, End: start.AddDate(0, 0, 6), Label: "this week"}
	default:
		return Period{Selector: AllTime, Label: "all time"}
	}
}
