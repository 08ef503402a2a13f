package category

import (
	"context"
)

type StubCategoryRepo struct {
	nextId int
	data   map[int]Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{data: map[int]Category{}}
}

func (s *StubCategoryRepo) Store(ctx context.Context, userId int, category Category) (int, error) {
	for _, existing := range s.data {
		if existing.Name == category.Name && existing.Type == category.Type {
			return 0, ErrDuplicateCategory
		}
	}
	s.nextId++
	category.ID = s.nextId
	s.data[category.ID] = category
	return category.ID, nil
}

func (s *StubCategoryRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *StubCategoryRepo) Get(ctx context.Context, userId int, categoryId int) (Category, error) {
	category, ok := s.data[categoryId]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *StubCategoryRepo) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	if _, ok := s.data[categoryId]; !ok {
		return false, nil
	}
	delete(s.data, categoryId)
	return true, nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = map[int]Category{}
}
