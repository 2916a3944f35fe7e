package itinerary

import (
	"fmt"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

// Choice is a caller-selected flight on a departure date.
type Choice struct {
	FlightID int64
	Date     domain.Date
}

// ValidateBooking re-times every choice against w and enforces the full
// itinerary rule set. Unlike a search, a choice that does not qualify fails
// the whole itinerary. flights must hold every catalog flight referenced by
// choices; a missing id is reported as invalid input.
func ValidateBooking(t domain.TripType, choices []Choice, flights map[int64]domain.Flight, dir *Directory, w Window) (domain.Proposal, error) {
	if err := t.CheckSegmentCount(len(choices)); err != nil {
		return domain.Proposal{}, err
	}

	segments := make([]domain.Segment, 0, len(choices))
	for i, c := range choices {
		f, ok := flights[c.FlightID]
		if !ok {
			return domain.Proposal{}, &domain.ValidationError{
				Field:   fmt.Sprintf("segments[%d].flight_id", i),
				Message: "Invalid flight_id",
			}
		}
		seg, ok, err := timedSegment(dir, f, c.Date, w)
		if err != nil {
			return domain.Proposal{}, err
		}
		if !ok {
			return domain.Proposal{}, &domain.ValidationError{
				Field:   fmt.Sprintf("segments[%d].departure_date", i),
				Message: "Segment departure must be after now and within 365 days",
			}
		}
		segments = append(segments, seg)
	}

	for i := 1; i < len(segments); i++ {
		prev, cur := segments[i-1], segments[i]
		if cur.DepartureUTC.Before(prev.ArrivalUTC) {
			return domain.Proposal{}, &domain.ValidationError{
				Field:   fmt.Sprintf("segments[%d]", i),
				Message: "Next segment must depart after previous segment arrives",
			}
		}
		if cur.Flight.OriginCode != prev.Flight.DestinationCode {
			return domain.Proposal{}, &domain.ValidationError{
				Field:   fmt.Sprintf("segments[%d]", i),
				Message: "Segments must connect (arrival airport must match next departure airport)",
			}
		}
	}

	if t == domain.TripTypeRoundTrip && !mirrored(segments[0].Flight, segments[1].Flight) {
		return domain.Proposal{}, &domain.ValidationError{
			Field:   "segments",
			Message: "round_trip requires A->B then B->A",
		}
	}

	return domain.NewProposal(t, segments), nil
}
