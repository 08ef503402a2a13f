package catalog

import (
	"context"
	"fmt"

	"github.com/eletroproposta/eletroproposta/pkg/user"
	log "github.com/sirupsen/logrus"
)

type CatalogService interface {
	GetAll(ctx context.Context) ([]Service, error)
	Get(ctx context.Context, id int) (Service, error)
	Create(ctx context.Context, service Service) (Service, error)
	Update(ctx context.Context, service Service) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type CatalogServiceImpl struct {
	repo Repo
}

func NewCatalogService(repo Repo) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo}
}

func (s *CatalogServiceImpl) GetAll(ctx context.Context) ([]Service, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *CatalogServiceImpl) Get(ctx context.Context, id int) (Service, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Service{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *CatalogServiceImpl) Create(ctx context.Context, service Service) (Service, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Service{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := service.Validate(); err != nil {
		return Service{}, err
	}

	id, err := s.repo.Store(ctx, userId, service)
	if err != nil {
		return Service{}, err
	}
	service.ID = id

	return service, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, service Service) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := service.Validate(); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, service)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("service not updated, probably because it does not exist (%d) or the user (%d) is not the owner", service.ID, userId)
		return false, ErrServiceNotFound
	}
	return true, nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("service not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return false, ErrServiceNotFound
	}
	return true, nil
}
