package transaction

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, transaction Transaction) (int, error)
	GetAll(ctx context.Context, userId int, filter Filter) ([]Transaction, error)
	Get(ctx context.Context, userId int, transactionId int) (Transaction, error)
	Update(ctx context.Context, userId int, transaction Transaction) (bool, error)
	Delete(ctx context.Context, userId int, transactionId int) (bool, error)
	CountByCategory(ctx context.Context, userId int, categoryName string, categoryType string) (int, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, transaction Transaction) (int, error) {
	query := `INSERT INTO transactions (user_id, type, amount, date, category, description)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		userId,
		transaction.Type,
		transaction.Amount,
		transaction.Date.Format("2006-01-02"),
		transaction.Category,
		transaction.Description,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store transaction: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int, filter Filter) ([]Transaction, error) {
	query := `SELECT id, type, amount, date, category, description
				FROM transactions WHERE user_id = $1`
	args := []any{userId}

	if !filter.From.IsZero() {
		args = append(args, filter.From.Format("2006-01-02"))
		query += " AND date >= $" + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To.Format("2006-01-02"))
		query += " AND date <= $" + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += " AND type = $" + strconv.Itoa(len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY date, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return transactions, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, transactionId int) (Transaction, error) {
	query := `SELECT id, type, amount, date, category, description
				FROM transactions WHERE id = $1 AND user_id = $2`
	transaction, err := scanTransaction(r.db.QueryRow(ctx, query, transactionId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, err
}

func (r *RepoImpl) Update(ctx context.Context, userId int, transaction Transaction) (bool, error) {
	query := `UPDATE transactions SET
				  type = $1,
				  amount = $2,
				  date = $3,
				  category = $4,
				  description = $5
			  WHERE id = $6 AND user_id = $7`
	tag, err := r.db.Exec(ctx, query,
		transaction.Type,
		transaction.Amount,
		transaction.Date.Format("2006-01-02"),
		transaction.Category,
		transaction.Description,
		transaction.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, transactionId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE id = $1 AND user_id = $2", transactionId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) CountByCategory(ctx context.Context, userId int, categoryName string, categoryType string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND category = $2 AND type = $3`
	var count int
	err := r.db.QueryRow(ctx, query, userId, categoryName, categoryType).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count transactions by category: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var transaction Transaction
	var date time.Time
	err := row.Scan(
		&transaction.ID,
		&transaction.Type,
		&transaction.Amount,
		&date,
		&transaction.Category,
		&transaction.Description,
	)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Errorf("could not scan transaction: %v", err)
		}
		return Transaction{}, err
	}
	transaction.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return transaction, nil
}
