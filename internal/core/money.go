// Package core implements the ledger reporting engine: row
// normalization, period resolution, filtering, aggregation and daily
// time series. Everything here is a pure transformation over a row
// snapshot; no I/O and no state between calls.
package core

import (
	"fmt"
	"strings"
	"unicode"
)

// Money is a non-negative amount in cents. Sums stay in integer cents;
// two-decimal display happens only at the formatting edge.
type Money struct {
	Cents int64
}

// Sub returns m - o. Net balances may be negative even though row
// amounts never are.
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// Add returns m + o.
func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }

// Dollars returns the dollar value as float64 for display only.
func (m Money) Dollars() float64 { return float64(m.Cents) / 100.0 }

// Format renders the amount as a two-decimal dollar string.
func (m Money) Format() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// ParseAmount converts a raw Amount cell to cents with half-up rounding
// on the third decimal. Both dot and comma separators are accepted.
// Malformed or negative input coerces to zero cents; normalization never
// fails on a bad amount.
func ParseAmount(s string) Money {
	cents, ok := parseDecimalToCents(s)
	if !ok {
		return Money{}
	}
	return Money{Cents: cents}
}

func parseDecimalToCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if strings.HasPrefix(s, "-") {
		// Sign lives on Kind, not on the amount.
		return 0, false
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, false
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" {
		return 0, true
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	var iv int64
	const maxSafe = (1<<63 - 1) / 100
	for _, r := range intPart {
		iv = iv*10 + int64(r-'0')
		if iv > maxSafe {
			return 0, false
		}
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, true
}
