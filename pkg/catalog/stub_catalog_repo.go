package catalog

import (
	"context"
)

type StubCatalogRepo struct {
	nextId int
	data   map[int]Service
}

func NewStubCatalogRepo() *StubCatalogRepo {
	return &StubCatalogRepo{data: map[int]Service{}}
}

func (s *StubCatalogRepo) Store(ctx context.Context, userId int, service Service) (int, error) {
	s.nextId++
	service.ID = s.nextId
	s.data[service.ID] = service
	return service.ID, nil
}

func (s *StubCatalogRepo) GetAll(ctx context.Context, userId int) ([]Service, error) {
	services := make([]Service, 0, len(s.data))
	for _, service := range s.data {
		services = append(services, service)
	}
	return services, nil
}

func (s *StubCatalogRepo) Get(ctx context.Context, userId int, serviceId int) (Service, error) {
	service, ok := s.data[serviceId]
	if !ok {
		return Service{}, ErrServiceNotFound
	}
	return service, nil
}

func (s *StubCatalogRepo) Update(ctx context.Context, userId int, service Service) (bool, error) {
	if _, ok := s.data[service.ID]; !ok {
		return false, nil
	}
	s.data[service.ID] = service
	return true, nil
}

func (s *StubCatalogRepo) Delete(ctx context.Context, userId int, serviceId int) (bool, error) {
	if _, ok := s.data[serviceId]; !ok {
		return false, nil
	}
	delete(s.data, serviceId)
	return true, nil
}

func (s *StubCatalogRepo) Cleanup() {
	s.data = map[int]Service{}
}
