package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"1", 100},
		{"1.0", 100},
		{"1.23", 123},
		{"1,23", 123},
		{"0.01", 1},
		{"1.005", 101}, // half-up rounding
		{" 2.50 ", 250},
		{".5", 50},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"1.2.3", 0},
		{"-5", 0}, // sign belongs to Kind
		{"12abc", 0},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got.Cents != tc.cents {
			t.Fatalf("%q: got %d want %d", tc.in, got.Cents, tc.cents)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{1, "$0.01"},
		{1599, "$15.99"},
		{200000, "$2000.00"},
		{-1050, "-$10.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("%d: got %q want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := (Money{Cents: 200}).Sub(Money{Cents: 350}); got.Cents != -150 {
		t.Fatalf("sub: got %d", got.Cents)
	}
	if got := (Money{Cents: 200}).Add(Money{Cents: 350}); got.Cents != 550 {
		t.Fatalf("add: got %d", got.Cents)
	}
}
