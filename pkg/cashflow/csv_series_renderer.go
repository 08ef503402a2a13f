package cashflow

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/shopspring/decimal"
)

type SeriesRenderer interface {
	RenderSeries(series []DailyBalance) (string, error)
}

type CsvSeriesRendererImpl struct {
}

func NewCsvSeriesRenderer() *CsvSeriesRendererImpl {
	return &CsvSeriesRendererImpl{}
}

func (t *CsvSeriesRendererImpl) RenderSeries(series []DailyBalance) (string, error) {
	data := make([][]string, 0, len(series)+1)
	data = append(data, []string{"Date", "Balance", "Income", "Expense", "Transactions", "Mark"})

	for _, day := range series {
		income := decimal.Zero
		expense := decimal.Zero
		for _, tx := range day.Transactions {
			switch tx.Type {
			case transaction.TypeIncome:
				income = income.Add(tx.Amount)
			case transaction.TypeExpense:
				expense = expense.Add(tx.Amount)
			}
		}
		data = append(data, []string{
			day.Date.Format("2006-01-02"),
			day.Balance.StringFixed(2),
			income.StringFixed(2),
			expense.StringFixed(2),
			strconv.Itoa(len(day.Transactions)),
			string(day.Mark),
		})
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.WriteAll(data); err != nil {
		return "", err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return buffer.String(), nil
}
