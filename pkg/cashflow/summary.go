package cashflow

import (
	"sort"
	"time"

	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Summarize aggregates the given transactions into dashboard KPIs: totals per
// type, net result, and the expense breakdown per category with its share of
// the total expense.
func Summarize(transactions []transaction.Transaction, from, to time.Time) Summary {
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero
	expenseByCategory := map[string]decimal.Decimal{}

	for _, tx := range transactions {
		switch tx.Type {
		case transaction.TypeIncome:
			totalIncome = totalIncome.Add(tx.Amount)
		case transaction.TypeExpense:
			totalExpense = totalExpense.Add(tx.Amount)
			expenseByCategory[tx.Category] = expenseByCategory[tx.Category].Add(tx.Amount)
		}
	}

	categories := make([]CategoryAmount, 0, len(expenseByCategory))
	for category, amount := range expenseByCategory {
		percent := decimal.Zero
		if totalExpense.IsPositive() {
			percent = amount.Div(totalExpense).Mul(oneHundred).Round(2)
		}
		categories = append(categories, CategoryAmount{
			Category:         category,
			Amount:           amount,
			PercentOfExpense: percent,
		})
	}
	// Largest categories first, ties by name for a stable order.
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount.Equal(categories[j].Amount) {
			return categories[i].Category < categories[j].Category
		}
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})

	return Summary{
		From:              truncateToDay(from),
		To:                truncateToDay(to),
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		Net:               totalIncome.Sub(totalExpense),
		ExpenseByCategory: categories,
	}
}
