package cashflow

import (
	"testing"
	"time"

	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func tx(txType transaction.TransactionType, amount string, date time.Time) transaction.Transaction {
	return transaction.Transaction{
		Type:     txType,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
		Category: "Geral",
	}
}

// farAway keeps "today" outside the projected interval so marks reflect the
// transaction mix only.
var farAway = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func TestProject_WorkedExample(t *testing.T) {
	// given
	transactions := []transaction.Transaction{
		tx(transaction.TypeIncome, "100", day(5)),
		tx(transaction.TypeExpense, "40", day(10)),
	}

	// when
	series, err := Project(transactions, day(1), day(10), farAway)

	// then
	require.NoError(t, err)
	require.Len(t, series, 10)
	for i := 0; i < 4; i++ {
		assert.True(t, series[i].Balance.IsZero(), "day %d should have balance 0", i+1)
	}
	for i := 4; i < 9; i++ {
		assert.True(t, series[i].Balance.Equal(decimal.NewFromInt(100)), "day %d should have balance 100", i+1)
	}
	assert.True(t, series[9].Balance.Equal(decimal.NewFromInt(60)))
}

func TestProject_OnePointPerDayNoGapsNoDuplicates(t *testing.T) {
	series, err := Project(nil, day(1), day(31), farAway)
	require.NoError(t, err)

	require.Len(t, series, 31)
	for i, point := range series {
		assert.Equal(t, day(i+1), point.Date)
	}
}

func TestProject_EmptyTransactionsEmitZeroBalances(t *testing.T) {
	series, err := Project([]transaction.Transaction{}, day(1), day(5), farAway)
	require.NoError(t, err)

	require.Len(t, series, 5)
	for _, point := range series {
		assert.True(t, point.Balance.IsZero())
		assert.Empty(t, point.Transactions)
		assert.Equal(t, MarkNone, point.Mark)
	}
}

func TestProject_OpeningBalanceFromEarlierTransactions(t *testing.T) {
	// given transactions strictly before the interval
	transactions := []transaction.Transaction{
		tx(transaction.TypeIncome, "500", day(1)),
		tx(transaction.TypeExpense, "100", day(3)),
		tx(transaction.TypeIncome, "50", day(12)),
	}

	// when
	series, err := Project(transactions, day(10), day(15), farAway)

	// then
	require.NoError(t, err)
	require.Len(t, series, 6)
	assert.True(t, series[0].Balance.Equal(decimal.NewFromInt(400)), "opening balance carried into first day")
	assert.True(t, series[5].Balance.Equal(decimal.NewFromInt(450)))
}

func TestProject_LastBalanceEqualsOpeningPlusInRangeSum(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.TypeIncome, "250.50", day(2)),
		tx(transaction.TypeExpense, "80.25", day(7)),
		tx(transaction.TypeIncome, "10", day(7)),
		tx(transaction.TypeExpense, "99.99", day(14)),
	}

	series, err := Project(transactions, day(5), day(20), farAway)
	require.NoError(t, err)

	opening := decimal.RequireFromString("250.50")
	inRange := decimal.RequireFromString("10").
		Sub(decimal.RequireFromString("80.25")).
		Sub(decimal.RequireFromString("99.99"))
	assert.True(t, series[len(series)-1].Balance.Equal(opening.Add(inRange)))
}

func TestProject_InputOrderDoesNotMatter(t *testing.T) {
	forward := []transaction.Transaction{
		tx(transaction.TypeIncome, "100", day(5)),
		tx(transaction.TypeExpense, "40", day(5)),
		tx(transaction.TypeIncome, "10", day(8)),
	}
	reversed := []transaction.Transaction{forward[2], forward[1], forward[0]}

	seriesA, err := Project(forward, day(1), day(10), farAway)
	require.NoError(t, err)
	seriesB, err := Project(reversed, day(1), day(10), farAway)
	require.NoError(t, err)

	require.Len(t, seriesB, len(seriesA))
	for i := range seriesA {
		assert.True(t, seriesA[i].Balance.Equal(seriesB[i].Balance), "balance mismatch on day %d", i+1)
		assert.Equal(t, seriesA[i].Mark, seriesB[i].Mark)
		assert.Len(t, seriesB[i].Transactions, len(seriesA[i].Transactions))
	}
}

func TestProject_SameDayTransactionsAggregateIntoOnePoint(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.TypeIncome, "100", day(5)),
		tx(transaction.TypeIncome, "200", day(5)),
		tx(transaction.TypeExpense, "50", day(5)),
	}

	series, err := Project(transactions, day(5), day(5), farAway)
	require.NoError(t, err)

	require.Len(t, series, 1)
	assert.True(t, series[0].Balance.Equal(decimal.NewFromInt(250)))
	assert.Len(t, series[0].Transactions, 3)
	assert.Equal(t, MarkMixed, series[0].Mark)
}

func TestProject_DayMarks(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.TypeIncome, "100", day(2)),
		tx(transaction.TypeExpense, "10", day(3)),
		tx(transaction.TypeIncome, "5", day(4)),
		tx(transaction.TypeExpense, "5", day(4)),
	}

	series, err := Project(transactions, day(1), day(5), farAway)
	require.NoError(t, err)

	assert.Equal(t, MarkNone, series[0].Mark)
	assert.Equal(t, MarkIncome, series[1].Mark)
	assert.Equal(t, MarkExpense, series[2].Mark)
	assert.Equal(t, MarkMixed, series[3].Mark)
	assert.Equal(t, MarkNone, series[4].Mark)
}

func TestProject_TodayOverridesMark(t *testing.T) {
	transactions := []transaction.Transaction{
		tx(transaction.TypeIncome, "100", day(2)),
	}

	series, err := Project(transactions, day(1), day(3), day(2))
	require.NoError(t, err)

	assert.Equal(t, MarkToday, series[1].Mark)
}

func TestProject_RejectsInvertedInterval(t *testing.T) {
	_, err := Project(nil, day(10), day(1), farAway)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestProject_SingleDayInterval(t *testing.T) {
	series, err := Project(nil, day(7), day(7), farAway)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, day(7), series[0].Date)
}
