package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

type FlightRepository interface {
	FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

var flightColumns = []string{
	"f.id",
	"f.airline_code",
	"a.name",
	"f.number",
	"f.departure_airport_code",
	"f.arrival_airport_code",
	"f.departure_time",
	"f.arrival_time",
	"f.price_cents",
}

func flightSelect() sq.SelectBuilder {
	return psql.
		Select(flightColumns...).
		From("flights f").
		Join("airlines a ON a.code = f.airline_code")
}

func flightFilterQuery(filter domain.FlightFilter) sq.SelectBuilder {
	q := flightSelect().Where(sq.Eq{
		"f.departure_airport_code": filter.OriginCodes,
		"f.arrival_airport_code":   filter.DestinationCodes,
	})
	if filter.AirlineCode != "" {
		q = q.Where(sq.Eq{"f.airline_code": filter.AirlineCode})
	}
	return q.OrderBy("f.id")
}

func (r *PGFlightRepository) FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	if len(filter.OriginCodes) == 0 || len(filter.DestinationCodes) == 0 {
		return []domain.Flight{}, nil
	}
	sqlStr, args, err := flightFilterQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build flights sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	return collectFlights(rows)
}

// GetByIDs returns the flights that exist among ids, keyed by id. Unknown ids
// are simply absent from the result.
func (r *PGFlightRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Flight, error) {
	found := make(map[int64]domain.Flight, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	sqlStr, args, err := flightSelect().Where(sq.Eq{"f.id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build flights sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	flights, err := collectFlights(rows)
	if err != nil {
		return nil, err
	}
	for _, f := range flights {
		found[f.ID] = f
	}
	return found, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// scanFlight reads the columns listed in flightColumns, in order, from the
// current row. Extra columns must come after them.
func scanFlight(row pgx.Row, extra ...any) (domain.Flight, error) {
	var (
		f        domain.Flight
		dep, arr pgtype.Time
		price    int64
	)
	dest := append([]any{
		&f.ID, &f.AirlineCode, &f.AirlineName, &f.Number,
		&f.OriginCode, &f.DestinationCode, &dep, &arr, &price,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Flight{}, fmt.Errorf("scan flight: %w", err)
	}
	f.DepartureTime = timeOfDay(dep)
	f.ArrivalTime = timeOfDay(arr)
	f.Price = domain.Money(price)
	return f, nil
}

func timeOfDay(t pgtype.Time) domain.TimeOfDay {
	return domain.TimeOfDayFromDuration(time.Duration(t.Microseconds) * time.Microsecond)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
