package core

// Filter narrows a normalized sequence to one user and one period. The
// user match is exact and case-sensitive. For bounded periods only rows
// with a usable date inside the range pass; unknown-date rows pass only
// under all time, where no range comparison happens. The input is never
// mutated and relative order is preserved.
func Filter(txs []Transaction, user string, p Period) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.User != user {
			continue
		}
		if p.Bounded() {
			if !t.HasDate() || !p.Contains(t.Day()) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// FilterKind keeps rows matching the kind filter, preserving order.
func FilterKind(txs []Transaction, f KindFilter) []Transaction {
	if f == AnyKind {
		return append([]Transaction(nil), txs...)
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t.Kind) {
			out = append(out, t)
		}
	}
	return out
}
