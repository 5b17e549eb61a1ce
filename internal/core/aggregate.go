package core

import "sort"

// CategoryAmount is one entry of a category breakdown.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// SumByKind sums amounts over rows of the given kind; zero when none
// match.
func SumByKind(txs []Transaction, k Kind) Money {
	var total Money
	for _, t := range txs {
		if t.Kind == k {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// NetBalance is income minus expenses over the whole sequence.
func NetBalance(txs []Transaction) Money {
	return SumByKind(txs, Income).Sub(SumByKind(txs, Expense))
}

// Total sums amounts over rows matching the kind filter.
func Total(txs []Transaction, f KindFilter) Money {
	var total Money
	for _, t := range txs {
		if f.Matches(t.Kind) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CategoryBreakdown sums amounts per category over rows of the given
// kind, sorted by amount descending. Equal sums keep first-seen category
// order, so the sort must stay stable. Empty input yields an empty
// slice.
func CategoryBreakdown(txs []Transaction, k Kind) []CategoryAmount {
	sums := make(map[string]int64)
	order := make([]string, 0)
	for _, t := range txs {
		if t.Kind != k {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: sums[name]}})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}
