package domain

import (
	"fmt"
	"time"
)

// TripType is the closed set of itinerary shapes. Each shape fixes how many
// segments an itinerary of that type may hold.
type TripType string

const (
	TripTypeOneWay    TripType = "one_way"
	TripTypeRoundTrip TripType = "round_trip"
	TripTypeMultiCity TripType = "multi_city"
)

const (
	MinMultiCitySegments = 2
	MaxMultiCitySegments = 5
)

func ParseTripType(s string) (TripType, error) {
	switch t := TripType(s); t {
	case TripTypeOneWay, TripTypeRoundTrip, TripTypeMultiCity:
		return t, nil
	default:
		return "", &ValidationError{Field: "type", Message: fmt.Sprintf("unsupported trip type %q", s)}
	}
}

// SegmentBounds returns the inclusive segment count range for the type.
func (t TripType) SegmentBounds() (min, max int) {
	switch t {
	case TripTypeOneWay:
		return 1, 1
	case TripTypeRoundTrip:
		return 2, 2
	case TripTypeMultiCity:
		return MinMultiCitySegments, MaxMultiCitySegments
	default:
		return 0, 0
	}
}

// CheckSegmentCount reports whether n segments fit the type.
func (t TripType) CheckSegmentCount(n int) error {
	lo, hi := t.SegmentBounds()
	if n >= lo && n <= hi {
		return nil
	}
	var msg string
	switch {
	case lo == 0:
		msg = fmt.Sprintf("unsupported trip type %q", string(t))
	case lo == hi && lo == 1:
		msg = fmt.Sprintf("%s requires exactly 1 segment", t)
	case lo == hi:
		msg = fmt.Sprintf("%s requires exactly %d segments", t, lo)
	default:
		msg = fmt.Sprintf("%s requires between %d and %d segments", t, lo, hi)
	}
	return &ValidationError{Field: "segments", Message: msg}
}

// Timing is a flight anchored to a calendar day. Local instants carry their
// airport's location; UTC instants are in time.UTC.
type Timing struct {
	DepartureTZ    string
	ArrivalTZ      string
	DepartureLocal time.Time
	ArrivalLocal   time.Time
	DepartureUTC   time.Time
	ArrivalUTC     time.Time
}

type Segment struct {
	Index         int
	Flight        Flight
	DepartureDate Date
	Timing
	// Price is a snapshot of the flight price at computation time.
	Price Money
}

// Proposal is an unpersisted itinerary produced by a search.
type Proposal struct {
	Type       TripType
	Segments   []Segment
	TotalPrice Money
	Currency   string
}

// NewProposal reindexes segments 1..N and totals their prices.
func NewProposal(t TripType, segments []Segment) Proposal {
	p := Proposal{Type: t, Segments: make([]Segment, len(segments)), Currency: Currency}
	for i, s := range segments {
		s.Index = i + 1
		p.Segments[i] = s
		p.TotalPrice += s.Price
	}
	return p
}

// FirstDepartureUTC returns the UTC departure of segment 1.
func (p Proposal) FirstDepartureUTC() time.Time {
	if len(p.Segments) == 0 {
		return time.Time{}
	}
	return p.Segments[0].DepartureUTC
}

// Booking is a committed itinerary.
type Booking struct {
	ID        int64
	Reference string
	Proposal
	CreatedAt time.Time
}

type ProposalPage struct {
	Items   []Proposal
	Page    int
	PerPage int
	Total   int
}

type BookingPage struct {
	Items   []Booking
	Page    int
	PerPage int
	Total   int
}

// TripSort selects the ordering of the trip history.
type TripSort string

const (
	TripSortCreatedAt   TripSort = "created_at"
	TripSortPrice       TripSort = "price"
	TripSortDepartureAt TripSort = "departure_at"
)

// ParseTripSort defaults an empty value to created_at.
func ParseTripSort(s string) (TripSort, error) {
	switch v := TripSort(s); v {
	case "":
		return TripSortCreatedAt, nil
	case TripSortCreatedAt, TripSortPrice, TripSortDepartureAt:
		return v, nil
	default:
		return "", &ValidationError{Field: "sort", Message: "sort must be one of created_at, price, departure_at"}
	}
}

// ParseSortDescending maps "asc"/"desc" to a flag; empty means descending.
func ParseSortDescending(s string) (bool, error) {
	switch s {
	case "", "desc":
		return true, nil
	case "asc":
		return false, nil
	default:
		return false, &ValidationError{Field: "dir", Message: "dir must be asc or desc"}
	}
}

// TripListParams controls the trip history listing.
type TripListParams struct {
	Sort       TripSort
	Descending bool
	PaginationParams
}
