package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, category Category) (int, error)
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Get(ctx context.Context, userId int, categoryId int) (Category, error)
	Delete(ctx context.Context, userId int, categoryId int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewCategoryRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, category Category) (int, error) {
	query := `INSERT INTO transaction_categories (user_id, name, type) VALUES ($1, $2, $3) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, userId, category.Name, category.Type).Scan(&id)
	if err != nil {
		if rest.IsUniqueViolation(err) {
			return 0, ErrDuplicateCategory
		}
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, type FROM transaction_categories WHERE user_id = $1 ORDER BY type, name`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return categories, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, categoryId int) (Category, error) {
	query := `SELECT id, name, type FROM transaction_categories WHERE id = $1 AND user_id = $2`
	var category Category
	err := r.db.QueryRow(ctx, query, categoryId, userId).Scan(&category.ID, &category.Name, &category.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM transaction_categories WHERE id = $1 AND user_id = $2", categoryId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
