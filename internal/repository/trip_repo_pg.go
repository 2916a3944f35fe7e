package repository

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // stored segment zones are reattached on read

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

type TripRepository interface {
	// Create stores the trip and its segments atomically and fills in ID and
	// CreatedAt.
	Create(ctx context.Context, trip *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, params domain.TripListParams) ([]domain.Booking, int, error)
}

type PGTripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) TripRepository {
	return &PGTripRepository{db: db}
}

func (r *PGTripRepository) Create(ctx context.Context, trip *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO trips (reference, type, currency, total_price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, trip.Reference, string(trip.Type), trip.Currency, int64(trip.TotalPrice)).
		Scan(&trip.ID, &trip.CreatedAt); err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	sqlStr, args, err := segmentInsert(trip.ID, trip.Segments).ToSql()
	if err != nil {
		return fmt.Errorf("build segments sql: %w", err)
	}
	if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert segments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit trip: %w", err)
	}
	trip.CreatedAt = trip.CreatedAt.UTC()
	return nil
}

func segmentInsert(tripID int64, segments []domain.Segment) sq.InsertBuilder {
	q := psql.Insert("trip_segments").Columns(
		"trip_id",
		"segment_index",
		"flight_id",
		"departure_date",
		"departure_at_utc",
		"arrival_at_utc",
		"departure_tz",
		"arrival_tz",
		"departure_at_local",
		"arrival_at_local",
		"price_cents",
	)
	for _, s := range segments {
		q = q.Values(
			tripID,
			s.Index,
			s.Flight.ID,
			s.DepartureDate.String(),
			s.DepartureUTC,
			s.ArrivalUTC,
			s.DepartureTZ,
			s.ArrivalTZ,
			wallClock(s.DepartureLocal),
			wallClock(s.ArrivalLocal),
			int64(s.Price),
		)
	}
	return q
}

func (r *PGTripRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	sqlStr, args, err := tripSelect().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build trip sql: %w", err)
	}
	trip, err := scanTrip(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, notFound(err)
	}
	trips := []domain.Booking{trip}
	if err := r.loadSegments(ctx, trips); err != nil {
		return nil, err
	}
	return &trips[0], nil
}

func (r *PGTripRepository) List(ctx context.Context, params domain.TripListParams) ([]domain.Booking, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trips: %w", err)
	}

	sqlStr, args, err := tripListQuery(params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build trips sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()

	trips := make([]domain.Booking, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate trips: %w", err)
	}
	rows.Close()

	if err := r.loadSegments(ctx, trips); err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func tripSelect() sq.SelectBuilder {
	return psql.
		Select("t.id", "t.reference::text", "t.type", "t.currency", "t.total_price_cents", "t.created_at").
		From("trips t")
}

// tripListQuery orders by the requested key with the id as a tie-breaker so
// pages stay stable.
func tripListQuery(params domain.TripListParams) sq.SelectBuilder {
	dir := "ASC"
	if params.Descending {
		dir = "DESC"
	}

	q := tripSelect()
	switch params.Sort {
	case domain.TripSortDepartureAt:
		q = q.Join("trip_segments ts1 ON ts1.trip_id = t.id AND ts1.segment_index = 1").
			OrderBy("ts1.departure_at_utc " + dir)
	case domain.TripSortPrice:
		q = q.OrderBy("t.total_price_cents " + dir)
	default:
		q = q.OrderBy("t.created_at " + dir)
	}
	return q.
		OrderBy("t.id " + dir).
		Limit(uint64(params.PerPage)).
		Offset(uint64(params.Offset()))
}

func scanTrip(row pgx.Row) (domain.Booking, error) {
	var (
		t        domain.Booking
		tripType string
		total    int64
	)
	if err := row.Scan(&t.ID, &t.Reference, &tripType, &t.Currency, &total, &t.CreatedAt); err != nil {
		return domain.Booking{}, err
	}
	t.Type = domain.TripType(tripType)
	t.TotalPrice = domain.Money(total)
	t.CreatedAt = t.CreatedAt.UTC()
	t.Segments = make([]domain.Segment, 0)
	return t, nil
}

func segmentSelect(tripIDs []int64) sq.SelectBuilder {
	return psql.
		Select(flightColumns...).
		Columns(
			"ts.trip_id",
			"ts.segment_index",
			"ts.departure_date",
			"ts.departure_at_utc",
			"ts.arrival_at_utc",
			"ts.departure_tz",
			"ts.arrival_tz",
			"ts.price_cents",
		).
		From("trip_segments ts").
		Join("flights f ON f.id = ts.flight_id").
		Join("airlines a ON a.code = f.airline_code").
		Where(sq.Eq{"ts.trip_id": tripIDs}).
		OrderBy("ts.trip_id", "ts.segment_index")
}

// loadSegments attaches stored segments to trips in segment order.
func (r *PGTripRepository) loadSegments(ctx context.Context, trips []domain.Booking) error {
	if len(trips) == 0 {
		return nil
	}
	byID := make(map[int64]int, len(trips))
	ids := make([]int64, len(trips))
	for i, t := range trips {
		byID[t.ID] = i
		ids[i] = t.ID
	}

	sqlStr, args, err := segmentSelect(ids).ToSql()
	if err != nil {
		return fmt.Errorf("build segments sql: %w", err)
	}
	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s       domain.Segment
			tripID  int64
			depDate time.Time
			price   int64
		)
		f, err := scanFlight(rows,
			&tripID, &s.Index, &depDate, &s.DepartureUTC, &s.ArrivalUTC,
			&s.DepartureTZ, &s.ArrivalTZ, &price)
		if err != nil {
			return fmt.Errorf("scan segment: %w", err)
		}
		s.Flight = f
		s.DepartureDate = domain.DateOf(depDate)
		s.DepartureUTC = s.DepartureUTC.UTC()
		s.ArrivalUTC = s.ArrivalUTC.UTC()
		s.Price = domain.Money(price)
		if s.DepartureLocal, err = inZone(s.DepartureUTC, s.DepartureTZ); err != nil {
			return err
		}
		if s.ArrivalLocal, err = inZone(s.ArrivalUTC, s.ArrivalTZ); err != nil {
			return err
		}

		i, ok := byID[tripID]
		if !ok {
			continue
		}
		trips[i].Segments = append(trips[i].Segments, s)
	}
	return rows.Err()
}

// wallClock drops the zone so a TIMESTAMP column keeps the local reading.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// inZone renders a stored instant in its airport's timezone. The stored wall
// clock is not used here; it is ambiguous inside a DST fall-back hour.
func inZone(instant time.Time, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return instant.In(loc), nil
}

var _ TripRepository = (*PGTripRepository)(nil)
