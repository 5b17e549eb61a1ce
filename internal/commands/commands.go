// Package commands is the chat-facing adapter: it parses command
// arguments, drives the row store and the reporting facade, and renders
// reply text. All dollar formatting lives here.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledgerbot/internal/core"
	"ledgerbot/internal/log"
	"ledgerbot/internal/report"
	"ledgerbot/internal/sheets"
)

// Request is one parsed chat command.
type Request struct {
	User    string
	Command string
	Args    map[string]string
}

// Arg returns a named argument or its default.
func (r Request) Arg(name, def string) string {
	if v, ok := r.Args[name]; ok && v != "" {
		return v
	}
	return def
}

// Reply is the text sent back to the chat.
type Reply struct {
	Text string
}

const (
	defaultHistoryLimit = 5
	appendDateLayout    = "2006-01-02 15:04:05"
)

// Handler dispatches chat commands.
type Handler struct {
	store  sheets.RowStore
	report *report.Service
	now    func() time.Time
	logger *log.Logger
}

// NewHandler builds a command handler. A nil clock means time.Now.
func NewHandler(store sheets.RowStore, svc *report.Service, now func() time.Time, logger *log.Logger) *Handler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentCommands)
	}
	return &Handler{store: store, report: svc, now: now, logger: logger}
}

// Handle executes one command. Unknown commands and bad arguments come
// back as reply text; only infrastructure failures surface as errors.
func (h *Handler) Handle(ctx context.Context, req Request) (Reply, error) {
	if req.User == "" {
		return Reply{Text: "A user name is required."}, nil
	}
	h.logger.InfoContext(ctx, "Handling command", log.FieldUser, req.User, log.FieldCommand, req.Command)

	switch req.Command {
	case "expense":
		return h.record(ctx, req, core.Expense)
	case "income":
		return h.record(ctx, req, core.Income)
	case "category":
		return h.setCategory(ctx, req)
	case "balance":
		return h.balance(ctx, req)
	case "total":
		return h.total(ctx, req)
	case "summary":
		return h.summary(ctx, req)
	case "history":
		return h.history(ctx, req)
	case "chart":
		return h.chart(ctx, req)
	case "help":
		return Reply{Text: helpText}, nil
	default:
		return Reply{Text: fmt.Sprintf("Unknown command %q. Try `help`.", req.Command)}, nil
	}
}

func (h *Handler) record(ctx context.Context, req Request, kind core.Kind) (Reply, error) {
	amount, err := parseAmountArg(req.Arg("amount", ""))
	if err != nil {
		return Reply{Text: fmt.Sprintf("Error recording %s: %v", strings.ToLower(kind.String()), err)}, nil
	}
	description := req.Arg("description", core.DefaultDescription)
	category := req.Arg("category", core.DefaultCategory)

	row := []string{
		req.User,
		fmt.Sprintf("%.2f", amount),
		description,
		category,
		kind.String(),
		h.now().Format(appendDateLayout),
	}
	ref, err := h.store.AppendRow(ctx, row)
	if err != nil {
		return Reply{}, fmt.Errorf("append %s row: %w", strings.ToLower(kind.String()), err)
	}
	h.logger.InfoContext(ctx, "Transaction recorded",
		log.FieldUser, req.User, log.FieldCommand, req.Command, log.FieldRowRef, ref)

	if kind == core.Income {
		return Reply{Text: fmt.Sprintf("Income of $%.2f from %q has been recorded in category %q!", amount, description, category)}, nil
	}
	return Reply{Text: fmt.Sprintf("Expense of $%.2f for %q has been recorded in category %q!", amount, description, category)}, nil
}

func (h *Handler) setCategory(ctx context.Context, req Request) (Reply, error) {
	category := req.Arg("category", "")
	if category == "" {
		return Reply{Text: "A category is required."}, nil
	}
	entryID, err := strconv.Atoi(req.Arg("entry_id", ""))
	if err != nil {
		return Reply{Text: "Entry ID must be a number."}, nil
	}

	rows, err := h.store.GetAllRows(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return Reply{Text: "No entries found to categorize."}, nil
	}
	if entryID < 1 || entryID > len(rows)-1 {
		return Reply{Text: fmt.Sprintf("Invalid entry ID. Please use a number between 1 and %d", len(rows)-1)}, nil
	}

	// Entry 1 is the first data row; row 1 of the sheet is the header.
	if err := h.store.UpdateCell(ctx, entryID+1, 4, category); err != nil {
		return Reply{}, fmt.Errorf("update category cell: %w", err)
	}
	return Reply{Text: fmt.Sprintf("Category for entry #%d has been set to %q", entryID, category)}, nil
}

func (h *Handler) balance(ctx context.Context, req Request) (Reply, error) {
	sel := core.ParsePeriodSelector(req.Arg("period", ""))
	res, err := h.report.Balance(ctx, req.User, sel)
	if errors.Is(err, report.ErrNoData) {
		return Reply{Text: "No transactions found."}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Balance Summary for %s:**\n", res.Period.Label)
	fmt.Fprintf(&b, "Total Income: %s\n", res.Income.Format())
	fmt.Fprintf(&b, "Total Expenses: %s\n", res.Expense.Format())
	fmt.Fprintf(&b, "**Net Balance: %s**", res.Net.Format())
	switch {
	case res.Net.Cents > 0:
		b.WriteString("\n✅ You're in the green! Keep it up!")
	case res.Net.Cents < 0:
		b.WriteString("\n❌ You're spending more than you earn.")
	default:
		b.WriteString("\n⚖️ Your budget is perfectly balanced.")
	}
	return Reply{Text: b.String()}, nil
}

func (h *Handler) total(ctx context.Context, req Request) (Reply, error) {
	sel := core.ParsePeriodSelector(req.Arg("period", ""))
	filter := core.ParseKindFilter(req.Arg("type", ""))
	period := core.ResolvePeriod(sel, h.now())

	res, err := h.report.Total(ctx, req.User, sel, filter)
	if errors.Is(err, report.ErrNoData) {
		return Reply{Text: fmt.Sprintf("No %s found for %s.", kindText(filter), period.Label)}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Total %s for %s: %s", kindText(res.Filter), res.Period.Label, res.Total.Format())}, nil
}

func (h *Handler) summary(ctx context.Context, req Request) (Reply, error) {
	sel := core.ParsePeriodSelector(req.Arg("period", ""))
	res, err := h.report.Summary(ctx, req.User, sel)
	if errors.Is(err, report.ErrNoData) {
		return Reply{Text: "No transactions found."}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Financial Summary for %s:**\n\n", res.Period.Label)

	if len(res.IncomeByCat) > 0 {
		b.WriteString("**💰 Income:**\n")
		for _, c := range res.IncomeByCat {
			fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Amount.Format())
		}
		fmt.Fprintf(&b, "**Total Income: %s**\n\n", res.Income.Format())
	} else {
		b.WriteString("**💰 Income:** None recorded\n\n")
	}

	if len(res.ExpenseByCat) > 0 {
		b.WriteString("**💸 Expenses:**\n")
		for _, c := range res.ExpenseByCat {
			fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Amount.Format())
		}
		fmt.Fprintf(&b, "**Total Expenses: %s**\n\n", res.Expense.Format())
	} else {
		b.WriteString("**💸 Expenses:** None recorded\n\n")
	}

	fmt.Fprintf(&b, "**⚖️ Net Balance: %s**", res.Net.Format())
	switch {
	case res.Net.Cents > 0:
		b.WriteString(" ✅")
	case res.Net.Cents < 0:
		b.WriteString(" ❌")
	default:
		b.WriteString(" ⚖️")
	}
	return Reply{Text: b.String()}, nil
}

func (h *Handler) history(ctx context.Context, req Request) (Reply, error) {
	filter := core.ParseKindFilter(req.Arg("type", ""))
	limit, err := strconv.Atoi(req.Arg("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit < 1 {
		limit = defaultHistoryLimit
	}

	txs, err := h.report.History(ctx, req.User, filter, limit)
	if errors.Is(err, report.ErrNoData) {
		return Reply{Text: fmt.Sprintf("No %s found.", kindText(filter))}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	b.WriteString("**Recent Financial History:**\n")
	for _, tx := range txs {
		prefix := "💸"
		if tx.Kind == core.Income {
			prefix = "💰"
		}
		dateStr := "Unknown date"
		if tx.HasDate() {
			dateStr = tx.OccurredAt.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "%s %s - %s (%s) - %s [%s]\n",
			prefix, tx.Amount.Format(), tx.Description, tx.Category, dateStr, tx.Kind)
	}
	return Reply{Text: b.String()}, nil
}

func (h *Handler) chart(ctx context.Context, req Request) (Reply, error) {
	kind, err := report.ParseChartKind(req.Arg("chart_type", "expense_by_category"))
	if err != nil {
		return Reply{Text: "Unknown chart type. Use expense_by_category, income_by_category, income_vs_expense or balance_over_time."}, nil
	}
	sel := core.ParsePeriodSelector(req.Arg("period", ""))

	series, err := h.report.ChartSeries(ctx, req.User, sel, kind)
	if errors.Is(err, report.ErrNoData) {
		return Reply{Text: "No data available"}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	h.logger.InfoContext(ctx, "Chart series built",
		log.FieldUser, req.User, log.FieldChartKind, req.Arg("chart_type", "expense_by_category"))
	return Reply{Text: renderSeries(series)}, nil
}

func renderSeries(s report.Series) string {
	var b strings.Builder
	switch s.Kind {
	case report.ExpenseByCategory:
		if len(s.Breakdown) == 0 {
			return "No expense data available"
		}
		fmt.Fprintf(&b, "**Expense Distribution by Category for %s:**\n", s.Period.Label)
		writeBreakdown(&b, s.Breakdown)
	case report.IncomeByCategory:
		if len(s.Breakdown) == 0 {
			return "No income data available"
		}
		fmt.Fprintf(&b, "**Income Distribution by Category for %s:**\n", s.Period.Label)
		writeBreakdown(&b, s.Breakdown)
	case report.IncomeVsExpense:
		fmt.Fprintf(&b, "**Income vs Expense for %s:**\n", s.Period.Label)
		fmt.Fprintf(&b, "Income: %s\n", s.Totals.Income.Format())
		fmt.Fprintf(&b, "Expense: %s\n", s.Totals.Expense.Format())
		fmt.Fprintf(&b, "Net: %s", s.Totals.Net.Format())
	case report.BalanceOverTime:
		fmt.Fprintf(&b, "**Balance Over Time for %s:**\n", s.Period.Label)
		for _, p := range s.Points {
			fmt.Fprintf(&b, "%s: income %s, expense %s, cumulative %s\n",
				p.Day.Format("2006-01-02"), p.Income.Format(), p.Expense.Format(), p.Cumulative.Format())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeBreakdown(b *strings.Builder, cats []core.CategoryAmount) {
	total := core.Money{}
	for _, c := range cats {
		total = total.Add(c.Amount)
	}
	for _, c := range cats {
		share := 0.0
		if total.Cents > 0 {
			share = float64(c.Amount.Cents) / float64(total.Cents) * 100
		}
		fmt.Fprintf(b, "%s: %s (%.1f%%)\n", c.Name, c.Amount.Format(), share)
	}
}

func kindText(f core.KindFilter) string {
	switch f {
	case core.OnlyExpense:
		return "expenses"
	case core.OnlyIncome:
		return "income"
	default:
		return "transactions"
	}
}

// parseAmountArg is the strict edge parse for new entries; unlike row
// normalization it rejects bad input instead of coercing it.
func parseAmountArg(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, errors.New("an amount is required")
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	return amount, nil
}

const helpText = `**Available Commands:**

**Income & Expense Tracking:**
` + "`expense amount:<amount> description:<description> [category:<category>]`" + ` - Record an expense
` + "`income amount:<amount> description:<description> [category:<category>]`" + ` - Record income
` + "`category entry_id:<id> category:<category>`" + ` - Set category for an entry

**Reporting & Analysis:**
` + "`balance [period:<all/month/week>]`" + ` - View your current balance
` + "`total [period:<all/month/week>] [type:<Expense/Income/All>]`" + ` - View total amounts
` + "`summary [period:<all/month/week>]`" + ` - View summary by category
` + "`history [limit:<number>] [type:<All/Expense/Income>]`" + ` - View recent entries
` + "`chart [chart_type:<expense_by_category/income_by_category/income_vs_expense/balance_over_time>] [period:<all/month/week>]`" + ` - View chart data

**Examples:**
` + "```" + `
expense amount:15.99 description:Lunch category:Food
income amount:1500 description:Salary category:Salary
category entry_id:1 category:Groceries
balance period:month
summary period:month
history limit:10 type:Income
` + "```"
