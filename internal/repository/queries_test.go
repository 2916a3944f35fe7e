package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

func TestFlightFilterQuery(t *testing.T) {
	sqlStr, args, err := flightFilterQuery(domain.FlightFilter{
		OriginCodes:      []string{"YYZ", "YTZ"},
		DestinationCodes: []string{"LHR"},
		AirlineCode:      "AC",
	}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sqlStr, "FROM flights f JOIN airlines a ON a.code = f.airline_code")
	assert.Contains(t, sqlStr, "f.arrival_airport_code IN ($1)")
	assert.Contains(t, sqlStr, "f.departure_airport_code IN ($2,$3)")
	assert.Contains(t, sqlStr, "f.airline_code = $4")
	assert.Contains(t, sqlStr, "ORDER BY f.id")
	assert.Equal(t, []any{"LHR", "YYZ", "YTZ", "AC"}, args)
}

func TestFlightFilterQuery_AnyAirline(t *testing.T) {
	sqlStr, args, err := flightFilterQuery(domain.FlightFilter{
		OriginCodes:      []string{"YUL"},
		DestinationCodes: []string{"YVR"},
	}).ToSql()

	require.NoError(t, err)
	assert.NotContains(t, sqlStr, "f.airline_code =")
	assert.Len(t, args, 2)
}

func TestAirportSearchQuery(t *testing.T) {
	sqlStr, args, err := airportSearchQuery(" tor ", 25).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sqlStr, "(code ILIKE $1 OR city_code ILIKE $2 OR city ILIKE $3 OR name ILIKE $4)")
	assert.Contains(t, sqlStr, "ORDER BY code LIMIT 25")
	assert.Equal(t, []any{"%tor%", "%tor%", "%tor%", "%tor%"}, args)
}

func TestAirportSearchQuery_Blank(t *testing.T) {
	sqlStr, args, err := airportSearchQuery("  ", 0).ToSql()

	require.NoError(t, err)
	assert.NotContains(t, sqlStr, "WHERE")
	assert.NotContains(t, sqlStr, "LIMIT")
	assert.Empty(t, args)
}

func TestTripListQuery(t *testing.T) {
	testCases := []struct {
		name     string
		params   domain.TripListParams
		contains []string
	}{
		{
			name: "created_at desc",
			params: domain.TripListParams{
				Sort: domain.TripSortCreatedAt, Descending: true,
				PaginationParams: domain.PaginationParams{Page: 1, PerPage: 10},
			},
			contains: []string{"ORDER BY t.created_at DESC, t.id DESC", "LIMIT 10 OFFSET 0"},
		},
		{
			name: "price asc",
			params: domain.TripListParams{
				Sort:             domain.TripSortPrice,
				PaginationParams: domain.PaginationParams{Page: 3, PerPage: 5},
			},
			contains: []string{"ORDER BY t.total_price_cents ASC, t.id ASC", "LIMIT 5 OFFSET 10"},
		},
		{
			name: "departure_at uses the first segment",
			params: domain.TripListParams{
				Sort: domain.TripSortDepartureAt, Descending: true,
				PaginationParams: domain.PaginationParams{Page: 1, PerPage: 20},
			},
			contains: []string{
				"JOIN trip_segments ts1 ON ts1.trip_id = t.id AND ts1.segment_index = 1",
				"ORDER BY ts1.departure_at_utc DESC, t.id DESC",
			},
		},
		{
			name: "page far past the end",
			params: domain.TripListParams{
				Sort:             domain.TripSortCreatedAt,
				PaginationParams: domain.PaginationParams{Page: 1 << 62, PerPage: 4},
			},
			contains: []string{"LIMIT 4 OFFSET 9223372036854775807"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sqlStr, _, err := tripListQuery(tc.params).ToSql()
			require.NoError(t, err)
			for _, fragment := range tc.contains {
				assert.Contains(t, sqlStr, fragment)
			}
		})
	}
}

func TestSegmentInsert(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	dep := time.Date(2030, 2, 1, 10, 0, 0, 0, paris)
	segments := []domain.Segment{
		{Index: 1, Flight: domain.Flight{ID: 7}, DepartureDate: domain.DateOf(dep), Price: 9000,
			Timing: domain.Timing{DepartureLocal: dep, ArrivalLocal: dep.Add(time.Hour), DepartureUTC: dep.UTC(), ArrivalUTC: dep.Add(time.Hour).UTC()}},
		{Index: 2, Flight: domain.Flight{ID: 8}, DepartureDate: domain.DateOf(dep), Price: 100,
			Timing: domain.Timing{DepartureLocal: dep, ArrivalLocal: dep, DepartureUTC: dep.UTC(), ArrivalUTC: dep.UTC()}},
	}

	sqlStr, args, err := segmentInsert(42, segments).ToSql()

	require.NoError(t, err)
	assert.Contains(t, sqlStr, "INSERT INTO trip_segments")
	require.Len(t, args, 22)
	assert.Equal(t, int64(42), args[0])
	assert.Equal(t, "2030-02-01", args[3])
	assert.Equal(t, time.Date(2030, 2, 1, 10, 0, 0, 0, time.UTC), args[8], "local departure is stored as wall clock")
	assert.Equal(t, int64(100), args[21])
}

func TestInZone(t *testing.T) {
	got, err := inZone(time.Date(2030, 7, 1, 13, 30, 0, 0, time.UTC), "America/Toronto")

	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, "America/Toronto", got.Location().String())
	assert.Equal(t, time.Date(2030, 7, 1, 13, 30, 0, 0, time.UTC), got.UTC())

	_, err = inZone(time.Now(), "Mars/Olympus")
	assert.Error(t, err)
}

func TestInZone_FallBackHour(t *testing.T) {
	// 01:30 happens twice in Toronto on 2030-11-03; this is the EST one.
	instant := time.Date(2030, 11, 3, 6, 30, 0, 0, time.UTC)

	got, err := inZone(instant, "America/Toronto")

	require.NoError(t, err)
	assert.True(t, got.Equal(instant))
	assert.Equal(t, "2030-11-03T01:30:00-05:00", got.Format(time.RFC3339))
}
