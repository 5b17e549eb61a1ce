// Package report composes the core engine into the named reporting
// operations consumed by the command layer. Every operation reads a
// fresh row snapshot, normalizes and filters it, and computes its
// result from that snapshot alone; nothing is held between calls.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"ledgerbot/internal/core"
	"ledgerbot/internal/sheets"
)

// ErrNoData signals that the filtered set is empty. Callers render a
// "no transactions found" reply instead of a zero amount.
var ErrNoData = errors.New("no matching transactions")

// ChartKind selects which derived structure a chart request returns.
type ChartKind int

const (
	ExpenseByCategory ChartKind = iota
	IncomeByCategory
	IncomeVsExpense
	BalanceOverTime
)

// ParseChartKind maps the command-layer chart_type argument.
func ParseChartKind(s string) (ChartKind, error) {
	switch s {
	case "expense_by_category":
		return ExpenseByCategory, nil
	case "income_by_category":
		return IncomeByCategory, nil
	case "income_vs_expense":
		return IncomeVsExpense, nil
	case "balance_over_time":
		return BalanceOverTime, nil
	default:
		return 0, fmt.Errorf("unknown chart type %q", s)
	}
}

// BalanceResult is the outcome of a balance query.
type BalanceResult struct {
	Period  core.Period
	Income  core.Money
	Expense core.Money
	Net     core.Money
}

// SummaryResult carries both breakdowns plus totals; the breakdown is
// always computed for both kinds, independent of any type filter.
type SummaryResult struct {
	Period       core.Period
	IncomeByCat  []core.CategoryAmount
	ExpenseByCat []core.CategoryAmount
	Income       core.Money
	Expense      core.Money
	Net          core.Money
}

// TotalResult is the outcome of a total query.
type TotalResult struct {
	Period core.Period
	Filter core.KindFilter
	Total  core.Money
}

// Series is the data behind one chart: exactly one of the fields is
// populated, per Kind.
type Series struct {
	Kind      ChartKind
	Period    core.Period
	Breakdown []core.CategoryAmount
	Points    []core.DailyPoint
	Totals    *BalanceResult
}

// Service is the reporting facade. It is stateless apart from its
// collaborators and safe for one invocation per request.
type Service struct {
	source sheets.RowSource
	now    func() time.Time
}

// New builds a facade over a row source. A nil clock means time.Now.
func New(source sheets.RowSource, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{source: source, now: now}
}

// snapshot reads all rows, strips the header when present, and returns
// the normalized ledger. An unreachable-looking empty sheet is an empty
// ledger, not an error.
func (s *Service) snapshot(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.source.GetAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := core.Headers
	data := rows
	if core.IsHeaderRow(rows[0]) {
		header = rows[0]
		data = rows[1:]
	}
	return core.Normalize(core.MapRows(header, data)), nil
}

func (s *Service) filtered(ctx context.Context, user string, sel core.PeriodSelector) ([]core.Transaction, core.Period, error) {
	txs, err := s.snapshot(ctx)
	if err != nil {
		return nil, core.Period{}, err
	}
	period := core.ResolvePeriod(sel, s.now())
	out := core.Filter(txs, user, period)
	if len(out) == 0 {
		return nil, period, ErrNoData
	}
	return out, period, nil
}

// Balance returns income, expense and net for the user over the period.
func (s *Service) Balance(ctx context.Context, user string, sel core.PeriodSelector) (BalanceResult, error) {
	txs, period, err := s.filtered(ctx, user, sel)
	if err != nil {
		return BalanceResult{}, err
	}
	return balanceOf(txs, period), nil
}

func balanceOf(txs []core.Transaction, period core.Period) BalanceResult {
	income := core.SumByKind(txs, core.Income)
	expense := core.SumByKind(txs, core.Expense)
	return BalanceResult{Period: period, Income: income, Expense: expense, Net: income.Sub(expense)}
}

// Total sums amounts matching the kind filter over the period.
func (s *Service) Total(ctx context.Context, user string, sel core.PeriodSelector, f core.KindFilter) (TotalResult, error) {
	txs, period, err := s.filtered(ctx, user, sel)
	if err != nil {
		return TotalResult{}, err
	}
	matching := core.FilterKind(txs, f)
	if len(matching) == 0 {
		return TotalResult{}, ErrNoData
	}
	return TotalResult{Period: period, Filter: f, Total: core.Total(txs, f)}, nil
}

// Summary returns the full per-category breakdown for both kinds plus
// the net balance.
func (s *Service) Summary(ctx context.Context, user string, sel core.PeriodSelector) (SummaryResult, error) {
	txs, period, err := s.filtered(ctx, user, sel)
	if err != nil {
		return SummaryResult{}, err
	}
	b := balanceOf(txs, period)
	return SummaryResult{
		Period:       period,
		IncomeByCat:  core.CategoryBreakdown(txs, core.Income),
		ExpenseByCat: core.CategoryBreakdown(txs, core.Expense),
		Income:       b.Income,
		Expense:      b.Expense,
		Net:          b.Net,
	}, nil
}

// History returns the user's most recent transactions, newest first,
// truncated to limit. Rows with an unknown date sort last. The period
// is always all time, matching the original command.
func (s *Service) History(ctx context.Context, user string, f core.KindFilter, limit int) ([]core.Transaction, error) {
	txs, _, err := s.filtered(ctx, user, core.AllTime)
	if err != nil {
		return nil, err
	}
	matching := core.FilterKind(txs, f)
	if len(matching) == 0 {
		return nil, ErrNoData
	}
	sort.SliceStable(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if a.HasDate() != b.HasDate() {
			return a.HasDate()
		}
		return a.OccurredAt.After(b.OccurredAt)
	})
	if limit > 0 && len(matching) > limit {
		matching = matching[:limit]
	}
	return matching, nil
}

// ChartSeries returns the data series for one chart kind over the
// period. Rendering is the caller's concern.
func (s *Service) ChartSeries(ctx context.Context, user string, sel core.PeriodSelector, kind ChartKind) (Series, error) {
	txs, period, err := s.filtered(ctx, user, sel)
	if err != nil {
		return Series{}, err
	}
	out := Series{Kind: kind, Period: period}
	switch kind {
	case ExpenseByCategory:
		out.Breakdown = core.CategoryBreakdown(txs, core.Expense)
	case IncomeByCategory:
		out.Breakdown = core.CategoryBreakdown(txs, core.Income)
	case IncomeVsExpense:
		b := balanceOf(txs, period)
		out.Totals = &b
	case BalanceOverTime:
		start, end := core.SeriesRange(txs, period, s.now())
		out.Points = core.BuildDailySeries(txs, start, end)
	}
	return out, nil
}
