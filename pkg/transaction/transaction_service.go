package transaction

import (
	"context"
	"fmt"

	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/pkg/user"
	log "github.com/sirupsen/logrus"
)

// CategoryChecker validates that a category name exists for the given type.
// Implemented by the category service.
type CategoryChecker interface {
	Exists(ctx context.Context, name string, categoryType string) (bool, error)
}

type TransactionService interface {
	GetAll(ctx context.Context, filter Filter) ([]Transaction, error)
	Create(ctx context.Context, transaction Transaction) (Transaction, error)
	Update(ctx context.Context, transaction Transaction) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type TransactionServiceImpl struct {
	repo       Repo
	categories CategoryChecker
	bus        *event_bus.EventBus
}

func NewTransactionService(repo Repo, categories CategoryChecker, bus *event_bus.EventBus) *TransactionServiceImpl {
	return &TransactionServiceImpl{repo: repo, categories: categories, bus: bus}
}

func (s *TransactionServiceImpl) GetAll(ctx context.Context, filter Filter) ([]Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId, filter)
}

func (s *TransactionServiceImpl) Create(ctx context.Context, transaction Transaction) (Transaction, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validate(ctx, transaction); err != nil {
		return Transaction{}, err
	}

	id, err := s.repo.Store(ctx, userId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	transaction.ID = id

	s.publishRecorded(ctx, transaction)

	return transaction, nil
}

func (s *TransactionServiceImpl) Update(ctx context.Context, transaction Transaction) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validate(ctx, transaction); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, transaction)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("transaction not updated, probably because it does not exist (%d) or the user (%d) is not the owner", transaction.ID, userId)
		return false, ErrTransactionNotFound
	}
	return true, nil
}

func (s *TransactionServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("transaction not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return false, ErrTransactionNotFound
	}
	return true, nil
}

func (s *TransactionServiceImpl) validate(ctx context.Context, transaction Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	exists, err := s.categories.Exists(ctx, transaction.Category, string(transaction.Type))
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return ErrUnknownCategory
	}
	return nil
}

func (s *TransactionServiceImpl) publishRecorded(ctx context.Context, transaction Transaction) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.TransactionRecorded, event_bus.TransactionRecordedEvent{
		TransactionId: transaction.ID,
		Type:          string(transaction.Type),
		Amount:        transaction.Amount,
		Category:      transaction.Category,
		Date:          transaction.Date,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("failed to publish transaction recorded event: %v", err)
	}
}
