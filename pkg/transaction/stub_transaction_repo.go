package transaction

import (
	"context"
	"sort"
)

type StubTransactionRepo struct {
	nextId int
	data   map[int]Transaction
}

func NewStubTransactionRepo() *StubTransactionRepo {
	return &StubTransactionRepo{data: map[int]Transaction{}}
}

func (s *StubTransactionRepo) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	s.nextId++
	transaction.ID = s.nextId
	s.data[transaction.ID] = transaction
	return transaction.ID, nil
}

func (s *StubTransactionRepo) GetAll(ctx context.Context, userId int, filter Filter) ([]Transaction, error) {
	transactions := make([]Transaction, 0, len(s.data))
	for _, transaction := range s.data {
		if !filter.From.IsZero() && transaction.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && transaction.Date.After(filter.To) {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		if filter.Category != "" && transaction.Category != filter.Category {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].ID < transactions[j].ID
		}
		return transactions[i].Date.Before(transactions[j].Date)
	})
	return transactions, nil
}

func (s *StubTransactionRepo) Get(ctx context.Context, userId int, transactionId int) (Transaction, error) {
	transaction, ok := s.data[transactionId]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *StubTransactionRepo) Update(ctx context.Context, userId int, transaction Transaction) (bool, error) {
	if _, ok := s.data[transaction.ID]; !ok {
		return false, nil
	}
	s.data[transaction.ID] = transaction
	return true, nil
}

func (s *StubTransactionRepo) Delete(ctx context.Context, userId int, transactionId int) (bool, error) {
	if _, ok := s.data[transactionId]; !ok {
		return false, nil
	}
	delete(s.data, transactionId)
	return true, nil
}

func (s *StubTransactionRepo) CountByCategory(ctx context.Context, userId int, categoryName string, categoryType string) (int, error) {
	count := 0
	for _, transaction := range s.data {
		if transaction.Category == categoryName && string(transaction.Type) == categoryType {
			count++
		}
	}
	return count, nil
}

func (s *StubTransactionRepo) Cleanup() {
	s.data = map[int]Transaction{}
}
