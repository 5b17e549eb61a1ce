package core

import (
	"testing"
	"time"
)

func TestNormalizeRowDefaults(t *testing.T) {
	cases := []struct {
		name string
		row  RawRow
		want Transaction
	}{
		{
			name: "well formed",
			row: RawRow{
				ColUser: "alice", ColAmount: "15.99", ColDescription: "lunch",
				ColCategory: "Food", ColType: "Expense", ColDate: "2024-03-01 12:30:00",
			},
			want: Transaction{
				User: "alice", Amount: Money{Cents: 1599}, Description: "lunch",
				Category: "Food", Kind: Expense,
				OccurredAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
			},
		},
		{
			name: "everything missing",
			row:  RawRow{ColUser: "bob"},
			want: Transaction{
				User: "bob", Amount: Money{Cents: 0}, Description: "N/A",
				Category: "Uncategorized", Kind: Expense,
			},
		},
		{
			name: "unparseable amount coerces to zero",
			row:  RawRow{ColUser: "bob", ColAmount: "abc", ColType: "Income"},
			want: Transaction{
				User: "bob", Amount: Money{Cents: 0}, Description: "N/A",
				Category: "Uncategorized", Kind: Income,
			},
		},
		{
			name: "bad date stays unknown, not today",
			row:  RawRow{ColUser: "bob", ColAmount: "1", ColDate: "not a date"},
			want: Transaction{
				User: "bob", Amount: Money{Cents: 100}, Description: "N/A",
				Category: "Uncategorized", Kind: Expense,
			},
		},
		{
			name: "comma separator",
			row:  RawRow{ColUser: "c", ColAmount: "12,34"},
			want: Transaction{
				User: "c", Amount: Money{Cents: 1234}, Description: "N/A",
				Category: "Uncategorized", Kind: Expense,
			},
		},
	}
	for _, tc := range cases {
		got := NormalizeRow(tc.row)
		if got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
		if got.Amount.Cents < 0 {
			t.Fatalf("%s: negative amount after normalization", tc.name)
		}
	}
}

func TestNormalizePreservesOrderAndCardinality(t *testing.T) {
	rows := []RawRow{
		{ColUser: "a", ColAmount: "1"},
		{ColUser: "b", ColAmount: "garbage"},
		{ColUser: "c"},
	}
	txs := Normalize(rows)
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].User != "a" || txs[1].User != "b" || txs[2].User != "c" {
		t.Fatalf("order not preserved: %+v", txs)
	}
	if got := Normalize(nil); len(got) != 0 || got == nil {
		t.Fatalf("empty input should give empty non-nil slice, got %#v", got)
	}
}

func TestMapRowsHeaderInsensitive(t *testing.T) {
	// Columns shuffled and lower-cased; extra column ignored.
	header := []string{"date", "user", "AMOUNT", "Notes", "type", "category", "description"}
	rows := [][]string{
		{"2024-03-01", "alice", "10", "x", "Expense", "Food", "lunch"},
		{"", "short"},
	}
	mapped := MapRows(header, rows)
	if len(mapped) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(mapped))
	}
	tx := NormalizeRow(mapped[0])
	if tx.User != "alice" || tx.Amount.Cents != 1000 || tx.Category != "Food" || tx.Description != "lunch" {
		t.Fatalf("unexpected mapping: %+v", tx)
	}
	if mapped[1][ColUser] != "short" || mapped[1][ColAmount] != "" {
		t.Fatalf("short row mapping wrong: %+v", mapped[1])
	}
}

func TestIsHeaderRow(t *testing.T) {
	if !IsHeaderRow([]string{"User", "Amount", "Description", "Category", "Type", "Date"}) {
		t.Fatalf("canonical header not detected")
	}
	if !IsHeaderRow([]string{"date", "user", "amount"}) {
		t.Fatalf("reordered lowercase header not detected")
	}
	if IsHeaderRow([]string{"alice", "10", "lunch", "Food", "Expense", "2024-03-01"}) {
		t.Fatalf("data row mistaken for header")
	}
	if IsHeaderRow(nil) {
		t.Fatalf("empty row mistaken for header")
	}
}

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01 08:15:00", time.Date(2024, 3, 1, 8, 15, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"03/01/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
		{"", time.Time{}},
	}
	for _, tc := range cases {
		if got := ParseDate(tc.in); !got.Equal(tc.want) {
			t.Fatalf("%q: got %v want %v", tc.in, got, tc.want)
		}
	}
}
