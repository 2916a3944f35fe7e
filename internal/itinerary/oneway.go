package itinerary

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

// FlightSource reads catalog flights. Implementations must be safe for
// concurrent use; multi-city searches query one leg per goroutine.
type FlightSource interface {
	FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
}

// Builder turns catalog flights into timed proposals for a single request.
type Builder struct {
	dir     *Directory
	flights FlightSource
	window  Window
}

func NewBuilder(dir *Directory, flights FlightSource, window Window) *Builder {
	return &Builder{dir: dir, flights: flights, window: window}
}

// OneWay returns one single-segment proposal per flight from origins to
// destinations that departs inside the window on date. Flights that do not
// qualify for that date are left out. The result is unordered.
func (b *Builder) OneWay(ctx context.Context, origins, destinations []string, date domain.Date, airline string) ([]domain.Proposal, error) {
	filter := domain.FlightFilter{
		OriginCodes:      origins,
		DestinationCodes: destinations,
		AirlineCode:      strings.ToUpper(strings.TrimSpace(airline)),
	}
	flights, err := b.flights.FindFlights(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find flights: %w", err)
	}

	proposals := make([]domain.Proposal, 0, len(flights))
	for _, f := range flights {
		if !filter.Matches(f) {
			continue
		}
		seg, ok, err := timedSegment(b.dir, f, date, b.window)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		proposals = append(proposals, domain.NewProposal(domain.TripTypeOneWay, []domain.Segment{seg}))
	}
	return proposals, nil
}

// timedSegment anchors f to date. ok is false when the flight does not
// qualify inside w.
func timedSegment(dir *Directory, f domain.Flight, date domain.Date, w Window) (domain.Segment, bool, error) {
	depLoc, err := dir.Location(f.OriginCode)
	if err != nil {
		return domain.Segment{}, false, fmt.Errorf("flight %d: %w", f.ID, err)
	}
	arrLoc, err := dir.Location(f.DestinationCode)
	if err != nil {
		return domain.Segment{}, false, fmt.Errorf("flight %d: %w", f.ID, err)
	}
	timing, ok := ResolveTiming(depLoc, arrLoc, f.DepartureTime, f.ArrivalTime, date, w)
	if !ok {
		return domain.Segment{}, false, nil
	}
	return domain.Segment{
		Index:         1,
		Flight:        f,
		DepartureDate: date,
		Timing:        timing,
		Price:         f.Price,
	}, true, nil
}
