package cashflow

import (
	"context"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/utils"
	"github.com/eletroproposta/eletroproposta/pkg/transaction"
)

// TransactionSource provides the user's transactions. Satisfied by the
// transaction service.
type TransactionSource interface {
	GetAll(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error)
}

type CashflowService interface {
	GetDailyBalances(ctx context.Context, from, to time.Time) ([]DailyBalance, error)
	GetSummary(ctx context.Context, from, to time.Time) (Summary, error)
}

type CashflowServiceImpl struct {
	transactions TransactionSource
	clock        utils.Clock
}

func NewCashflowService(transactions TransactionSource, clock utils.Clock) *CashflowServiceImpl {
	return &CashflowServiceImpl{transactions: transactions, clock: clock}
}

func (s *CashflowServiceImpl) GetDailyBalances(ctx context.Context, from, to time.Time) ([]DailyBalance, error) {
	// Transactions before the interval feed the opening balance, so only the
	// upper bound is pushed to the query.
	transactions, err := s.transactions.GetAll(ctx, transaction.Filter{To: to})
	if err != nil {
		return nil, err
	}
	return Project(transactions, from, to, s.clock.Now())
}

func (s *CashflowServiceImpl) GetSummary(ctx context.Context, from, to time.Time) (Summary, error) {
	if truncateToDay(to).Before(truncateToDay(from)) {
		return Summary{}, ErrInvalidInterval
	}
	transactions, err := s.transactions.GetAll(ctx, transaction.Filter{From: from, To: to})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(transactions, from, to), nil
}
