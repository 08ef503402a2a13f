package cashflow

import (
	"errors"
	"sort"
	"time"

	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/shopspring/decimal"
)

var ErrInvalidInterval = errors.New("interval end is before its start")

// Project computes the running daily balance series for the inclusive
// interval [from, to]. The opening balance is the sum of signed amounts of
// all transactions strictly before the interval; every calendar day gets
// exactly one point, whether or not anything happened on it. An empty
// transaction list still yields a zero-balance point per day.
func Project(transactions []transaction.Transaction, from, to, today time.Time) ([]DailyBalance, error) {
	from = truncateToDay(from)
	to = truncateToDay(to)
	today = truncateToDay(today)
	if to.Before(from) {
		return nil, ErrInvalidInterval
	}

	sorted := make([]transaction.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return truncateToDay(sorted[i].Date).Before(truncateToDay(sorted[j].Date))
	})

	balance := decimal.Zero
	byDay := make(map[time.Time][]transaction.Transaction)
	for _, tx := range sorted {
		day := truncateToDay(tx.Date)
		if day.Before(from) {
			balance = balance.Add(tx.SignedAmount())
			continue
		}
		if day.After(to) {
			continue
		}
		byDay[day] = append(byDay[day], tx)
	}

	var series []DailyBalance
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dayTransactions := byDay[day]
		for _, tx := range dayTransactions {
			balance = balance.Add(tx.SignedAmount())
		}
		series = append(series, DailyBalance{
			Date:         day,
			Balance:      balance,
			Transactions: dayTransactions,
			Mark:         classifyDay(day, dayTransactions, today),
		})
	}

	return series, nil
}

func classifyDay(day time.Time, transactions []transaction.Transaction, today time.Time) DayMark {
	if day.Equal(today) {
		return MarkToday
	}
	hasIncome := false
	hasExpense := false
	for _, tx := range transactions {
		switch tx.Type {
		case transaction.TypeIncome:
			hasIncome = true
		case transaction.TypeExpense:
			hasExpense = true
		}
	}
	switch {
	case hasIncome && hasExpense:
		return MarkMixed
	case hasIncome:
		return MarkIncome
	case hasExpense:
		return MarkExpense
	default:
		return MarkNone
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
