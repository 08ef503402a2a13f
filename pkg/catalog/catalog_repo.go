package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId int, service Service) (int, error)
	GetAll(ctx context.Context, userId int) ([]Service, error)
	Get(ctx context.Context, userId int, serviceId int) (Service, error)
	Update(ctx context.Context, userId int, service Service) (bool, error)
	Delete(ctx context.Context, userId int, serviceId int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewCatalogRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, service Service) (int, error) {
	query := `INSERT INTO services (user_id, name, description, price_type, fixed_price, hourly_rate)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		userId,
		service.Name,
		service.Description,
		service.PriceType,
		service.FixedPrice,
		service.HourlyRate,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store service: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Service, error) {
	query := `SELECT id, name, description, price_type, fixed_price, hourly_rate
				FROM services WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query services: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var service Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.PriceType,
			&service.FixedPrice,
			&service.HourlyRate,
		); err != nil {
			err := fmt.Errorf("could not scan service: %w", err)
			log.Error(err)
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return services, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId int, serviceId int) (Service, error) {
	query := `SELECT id, name, description, price_type, fixed_price, hourly_rate
				FROM services WHERE id = $1 AND user_id = $2`
	var service Service
	err := r.db.QueryRow(ctx, query, serviceId, userId).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.PriceType,
		&service.FixedPrice,
		&service.HourlyRate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Service{}, ErrServiceNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get service: %w", err)
		log.Error(err)
		return Service{}, err
	}
	return service, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, service Service) (bool, error) {
	query := `UPDATE services SET
				  name = $1,
				  description = $2,
				  price_type = $3,
				  fixed_price = $4,
				  hourly_rate = $5
			  WHERE id = $6 AND user_id = $7`
	tag, err := r.db.Exec(ctx, query,
		service.Name,
		service.Description,
		service.PriceType,
		service.FixedPrice,
		service.HourlyRate,
		service.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update service: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, serviceId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM services WHERE id = $1 AND user_id = $2", serviceId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete service: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
