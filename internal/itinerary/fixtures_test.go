package itinerary

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

var testNow = time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)

func testAirports() []domain.Airport {
	return []domain.Airport{
		{Code: "JFK", CityCode: "NYC", Name: "John F. Kennedy", City: "New York", CountryCode: "US", Timezone: "America/New_York"},
		{Code: "LGA", CityCode: "NYC", Name: "LaGuardia", City: "New York", CountryCode: "US", Timezone: "America/New_York"},
		{Code: "LHR", CityCode: "LON", Name: "Heathrow", City: "London", CountryCode: "GB", Timezone: "Europe/London"},
		{Code: "LGW", CityCode: "LON", Name: "Gatwick", City: "London", CountryCode: "GB", Timezone: "Europe/London"},
		{Code: "CDG", CityCode: "PAR", Name: "Charles de Gaulle", City: "Paris", CountryCode: "FR", Timezone: "Europe/Paris"},
		{Code: "BER", CityCode: "BER", Name: "Brandenburg", City: "Berlin", CountryCode: "DE", Timezone: "Europe/Berlin"},
		{Code: "NRT", CityCode: "TYO", Name: "Narita", City: "Tokyo", CountryCode: "JP", Timezone: "Asia/Tokyo"},
	}
}

func testDirectory(t *testing.T) *Directory {
	t.Helper()
	dir, err := NewDirectory(testAirports())
	require.NoError(t, err)
	return dir
}

func flight(id int64, airline, from, to, dep, arr, price string) domain.Flight {
	depTime, err := domain.ParseTimeOfDay(dep)
	if err != nil {
		panic(err)
	}
	arrTime, err := domain.ParseTimeOfDay(arr)
	if err != nil {
		panic(err)
	}
	amount, err := domain.ParseMoney(price)
	if err != nil {
		panic(err)
	}
	return domain.Flight{
		ID:              id,
		AirlineCode:     airline,
		Number:          airline + "100",
		OriginCode:      from,
		DestinationCode: to,
		DepartureTime:   depTime,
		ArrivalTime:     arrTime,
		Price:           amount,
	}
}

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeFlightSource filters an in-memory catalog the way the repository does.
type fakeFlightSource struct {
	flights []domain.Flight
	calls   atomic.Int32
}

func (f *fakeFlightSource) FindFlights(_ context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	f.calls.Add(1)
	var out []domain.Flight
	for _, fl := range f.flights {
		if filter.Matches(fl) {
			out = append(out, fl)
		}
	}
	return out, nil
}

func byID(flights ...domain.Flight) map[int64]domain.Flight {
	m := make(map[int64]domain.Flight, len(flights))
	for _, f := range flights {
		m[f.ID] = f
	}
	return m
}

// timedSeg builds a segment directly from UTC instants for composer tests.
func timedSeg(id int64, from, to string, dep time.Time, dur time.Duration, price domain.Money) domain.Segment {
	return domain.Segment{
		Index:         1,
		Flight:        domain.Flight{ID: id, AirlineCode: "XX", OriginCode: from, DestinationCode: to, Price: price},
		DepartureDate: domain.DateOf(dep),
		Timing: domain.Timing{
			DepartureTZ:    "UTC",
			ArrivalTZ:      "UTC",
			DepartureLocal: dep,
			ArrivalLocal:   dep.Add(dur),
			DepartureUTC:   dep,
			ArrivalUTC:     dep.Add(dur),
		},
		Price: price,
	}
}

func oneWay(seg domain.Segment) domain.Proposal {
	return domain.NewProposal(domain.TripTypeOneWay, []domain.Segment{seg})
}
