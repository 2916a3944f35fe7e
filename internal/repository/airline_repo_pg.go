package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

type AirlineRepository interface {
	List(ctx context.Context) ([]domain.Airline, error)
}

type PGAirlineRepository struct {
	db *pgxpool.Pool
}

func NewAirlineRepository(db *pgxpool.Pool) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name FROM airlines ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("query airlines: %w", err)
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.Code, &a.Name); err != nil {
			return nil, fmt.Errorf("scan airline: %w", err)
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

var _ AirlineRepository = (*PGAirlineRepository)(nil)
