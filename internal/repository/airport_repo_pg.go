package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Airport, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	return r.query(ctx, airportSearchQuery("", 0))
}

// Search matches the query against code, city code, city and name,
// case-insensitively. A blank query matches every airport.
func (r *PGAirportRepository) Search(ctx context.Context, query string, limit int) ([]domain.Airport, error) {
	return r.query(ctx, airportSearchQuery(query, limit))
}

func (r *PGAirportRepository) query(ctx context.Context, q sq.SelectBuilder) ([]domain.Airport, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build airports sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query airports: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Code, &a.CityCode, &a.Name, &a.City, &a.CountryCode, &a.Timezone); err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func airportSearchQuery(query string, limit int) sq.SelectBuilder {
	q := psql.
		Select("code", "city_code", "name", "city", "country_code", "timezone").
		From("airports").
		OrderBy("code")

	if term := strings.TrimSpace(query); term != "" {
		like := "%" + term + "%"
		q = q.Where(sq.Or{
			sq.ILike{"code": like},
			sq.ILike{"city_code": like},
			sq.ILike{"city": like},
			sq.ILike{"name": like},
		})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q
}

var _ AirportRepository = (*PGAirportRepository)(nil)
