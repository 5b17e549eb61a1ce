package core

import (
	"strings"
	"time"
)

// Kind discriminates income from expense. Every normalized transaction
// carries exactly one of the two values.
type Kind int

const (
	Expense Kind = iota
	Income
)

func (k Kind) String() string {
	if k == Income {
		return "Income"
	}
	return "Expense"
}

// ParseKind maps a raw Type cell to a Kind. Anything that is not
// recognizably income becomes Expense.
func ParseKind(s string) Kind {
	if strings.EqualFold(strings.TrimSpace(s), "Income") {
		return Income
	}
	return Expense
}

// KindFilter is an optional kind restriction for totals and history.
type KindFilter int

const (
	AnyKind KindFilter = iota
	OnlyIncome
	OnlyExpense
)

// Matches reports whether a transaction of kind k passes the filter.
func (f KindFilter) Matches(k Kind) bool {
	switch f {
	case OnlyIncome:
		return k == Income
	case OnlyExpense:
		return k == Expense
	default:
		return true
	}
}

// ParseKindFilter maps the command-layer type argument ("Income",
// "Expense", "All", empty) to a KindFilter.
func ParseKindFilter(s string) KindFilter {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), "Income"):
		return OnlyIncome
	case strings.EqualFold(strings.TrimSpace(s), "Expense"):
		return OnlyExpense
	default:
		return AnyKind
	}
}

// Ledger column names, in canonical header order.
const (
	ColUser        = "User"
	ColAmount      = "Amount"
	ColDescription = "Description"
	ColCategory    = "Category"
	ColType        = "Type"
	ColDate        = "Date"
)

// Headers is the canonical header row of the backing store.
var Headers = []string{ColUser, ColAmount, ColDescription, ColCategory, ColType, ColDate}

// Defaults applied by normalization.
const (
	DefaultDescription = "N/A"
	DefaultCategory    = "Uncategorized"
)

// Transaction is one normalized ledger row. After normalization every
// field is populated: Amount is non-negative, Kind is one of the two
// values, and an unparseable date is the zero time (never "now"), so a
// zero OccurredAt means "unknown date".
type Transaction struct {
	User        string
	Amount      Money
	Description string
	Category    string
	Kind        Kind
	OccurredAt  time.Time
}

// HasDate reports whether the transaction carries a usable date.
// Unknown-date rows are excluded from month/week filtering but still
// count toward all-time aggregates.
func (t Transaction) HasDate() bool {
	return !t.OccurredAt.IsZero()
}

// Day returns the transaction's UTC calendar day, for grouping.
func (t Transaction) Day() time.Time {
	u := t.OccurredAt.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
