package category

import "errors"

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryInUse     = errors.New("category is referenced by transactions")
	ErrCategoryInvalid   = errors.New("category data invalid")
)

// Category is a user-scoped transaction category. The (user, name, type)
// tuple is unique.
type Category struct {
	ID   int
	Name string
	Type CategoryType
}

func (c Category) Validate() error {
	if c.Name == "" {
		return errors.Join(ErrCategoryInvalid, errors.New("name is required"))
	}
	if c.Type != CategoryTypeIncome && c.Type != CategoryTypeExpense {
		return errors.Join(ErrCategoryInvalid, errors.New("unknown category type"))
	}
	return nil
}
