package core

import (
	"strings"
	"time"
)

// RawRow is one unparsed ledger row keyed by column name.
type RawRow map[string]string

// Date layouts accepted by normalization, tried in order. The backing
// store writes the first one; the rest tolerate hand-edited cells.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
	"01/02/2006",
}

// ParseDate parses a raw Date cell as a UTC instant. The zero time is
// returned for anything unparseable, never the current time, so a bad
// date stays out of range arithmetic instead of silently landing today.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// NormalizeRow converts one raw row into a Transaction. It is total:
// every malformed field degrades to its documented default and no input
// produces an error.
func NormalizeRow(row RawRow) Transaction {
	desc := strings.TrimSpace(row[ColDescription])
	if desc == "" {
		desc = DefaultDescription
	}
	cat := strings.TrimSpace(row[ColCategory])
	if cat == "" {
		cat = DefaultCategory
	}
	return Transaction{
		User:        row[ColUser],
		Amount:      ParseAmount(row[ColAmount]),
		Description: desc,
		Category:    cat,
		Kind:        ParseKind(row[ColType]),
		OccurredAt:  ParseDate(row[ColDate]),
	}
}

// Normalize converts an ordered sequence of raw rows, preserving
// cardinality and order. An empty input yields an empty (non-nil) slice.
func Normalize(rows []RawRow) []Transaction {
	out := make([]Transaction, len(rows))
	for i, row := range rows {
		out[i] = NormalizeRow(row)
	}
	return out
}

// MapRows pairs a header row with data rows, keying each cell by its
// column name. Matching is case-insensitive and tolerates the six known
// columns appearing in any order; unknown columns are ignored and short
// rows leave the missing fields empty.
func MapRows(header []string, rows [][]string) []RawRow {
	idx := make(map[int]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		for _, known := range Headers {
			if strings.EqualFold(name, known) {
				idx[i] = known
				break
			}
		}
	}
	out := make([]RawRow, len(rows))
	for i, cells := range rows {
		row := make(RawRow, len(idx))
		for j, canonical := range idx {
			if j < len(cells) {
				row[canonical] = cells[j]
			}
		}
		out[i] = row
	}
	return out
}

// IsHeaderRow reports whether a raw sheet row looks like the header row.
// The check is by name so a sheet with reordered columns still strips
// its header correctly.
func IsHeaderRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	matched := 0
	for _, cell := range cells {
		for _, known := range Headers {
			if strings.EqualFold(strings.TrimSpace(cell), known) {
				matched++
				break
			}
		}
	}
	return matched >= 2
}
