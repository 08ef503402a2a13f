package category

import (
	"context"
	"fmt"

	"github.com/eletroproposta/eletroproposta/pkg/user"
	log "github.com/sirupsen/logrus"
)

// TransactionCounter reports how many transactions of the given user still
// reference a category name and type. Implemented by the transaction
// repository; declared here to keep the dependency direction one-way.
type TransactionCounter interface {
	CountByCategory(ctx context.Context, userId int, categoryName string, categoryType string) (int, error)
}

type CategoryService interface {
	GetAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id int) (bool, error)
	Exists(ctx context.Context, name string, categoryType string) (bool, error)
}

type CategoryServiceImpl struct {
	repo         Repo
	transactions TransactionCounter
}

func NewCategoryService(repo Repo, transactions TransactionCounter) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo, transactions: transactions}
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := category.Validate(); err != nil {
		return Category{}, err
	}

	id, err := s.repo.Store(ctx, userId, category)
	if err != nil {
		return Category{}, err
	}
	category.ID = id
	return category, nil
}

// Delete removes a category unless any transaction still references it.
// The usage pre-check runs first so the caller gets a specific error rather
// than a bare constraint violation.
func (s *CategoryServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	category, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return false, err
	}

	count, err := s.transactions.CountByCategory(ctx, userId, category.Name, string(category.Type))
	if err != nil {
		return false, fmt.Errorf("failed to check category usage: %w", err)
	}
	if count > 0 {
		log.Debugf("category %q (%s) still referenced by %d transactions", category.Name, category.Type, count)
		return false, ErrCategoryInUse
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, ErrCategoryNotFound
	}
	return true, nil
}

func (s *CategoryServiceImpl) Exists(ctx context.Context, name string, categoryType string) (bool, error) {
	categories, err := s.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, category := range categories {
		if category.Name == name && string(category.Type) == categoryType {
			return true, nil
		}
	}
	return false, nil
}
