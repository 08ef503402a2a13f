package cashflow

import (
	"time"

	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/shopspring/decimal"
)

// DayMark classifies a day's dot on the cash-flow chart by the mix of
// transactions that happened on it. Today overrides the mix.
type DayMark string

const (
	MarkNone    DayMark = "none"
	MarkIncome  DayMark = "income"
	MarkExpense DayMark = "expense"
	MarkMixed   DayMark = "mixed"
	MarkToday   DayMark = "today"
)

// DailyBalance is one point of the projected series: the running balance at
// the end of the given calendar day and the transactions that landed on it.
type DailyBalance struct {
	Date         time.Time
	Balance      decimal.Decimal
	Transactions []transaction.Transaction
	Mark         DayMark
}

// Summary aggregates a date interval for the dashboard KPIs.
type Summary struct {
	From              time.Time
	To                time.Time
	TotalIncome       decimal.Decimal
	TotalExpense      decimal.Decimal
	Net               decimal.Decimal
	ExpenseByCategory []CategoryAmount
}

type CategoryAmount struct {
	Category         string
	Amount           decimal.Decimal
	PercentOfExpense decimal.Decimal
}
