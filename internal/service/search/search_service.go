package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/Domenick1991/tripsearch/internal/domain"
	"github.com/Domenick1991/tripsearch/internal/itinerary"
	"github.com/Domenick1991/tripsearch/internal/metrics"
)

type SearchUseCase interface {
	Search(ctx context.Context, input SearchInput) (domain.ProposalPage, error)
}

// Catalog supplies the airport list and the flights proposals are built from.
type Catalog interface {
	Airports(ctx context.Context) ([]domain.Airport, error)
	itinerary.FlightSource
}

type LegInput struct {
	Origin        string
	Destination   string
	DepartureDate string
}

// SearchInput is a raw search request. Origin, Destination and the dates are
// used by one_way and round_trip; Legs only by multi_city.
type SearchInput struct {
	Type             string
	Origin           string
	Destination      string
	DepartureDate    string
	ReturnDate       string
	Legs             []LegInput
	PreferredAirline string
	Sort             string
	Page             int
	PerPage          int
}

type SearchService struct {
	catalog Catalog
	now     func() time.Time
	log     *slog.Logger
}

type SearchServiceOption func(*SearchService)

func WithClock(now func() time.Time) SearchServiceOption {
	return func(s *SearchService) {
		s.now = now
	}
}

func WithLogger(log *slog.Logger) SearchServiceOption {
	return func(s *SearchService) {
		s.log = log
	}
}

func NewSearchService(catalog Catalog, opts ...SearchServiceOption) *SearchService {
	s := &SearchService{
		catalog: catalog,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search computes every qualifying proposal for the request, ranks them and
// returns the requested page. An empty page is not an error.
func (s *SearchService) Search(ctx context.Context, input SearchInput) (domain.ProposalPage, error) {
	tripType, err := domain.ParseTripType(input.Type)
	if err != nil {
		return domain.ProposalPage{}, err
	}
	key, err := itinerary.ParseSortKey(input.Sort)
	if err != nil {
		return domain.ProposalPage{}, err
	}
	pagination, err := domain.NewPaginationParams(input.Page, input.PerPage)
	if err != nil {
		return domain.ProposalPage{}, err
	}

	airports, err := s.catalog.Airports(ctx)
	if err != nil {
		return domain.ProposalPage{}, fmt.Errorf("load airports: %w", err)
	}
	dir, err := itinerary.NewDirectory(airports)
	if err != nil {
		return domain.ProposalPage{}, fmt.Errorf("build airport directory: %w", err)
	}

	start := time.Now()
	builder := itinerary.NewBuilder(dir, s.catalog, itinerary.NewWindow(s.now()))

	var proposals []domain.Proposal
	switch tripType {
	case domain.TripTypeOneWay:
		proposals, err = s.oneWay(ctx, builder, dir, input)
	case domain.TripTypeRoundTrip:
		proposals, err = s.roundTrip(ctx, builder, dir, input)
	case domain.TripTypeMultiCity:
		proposals, err = s.multiCity(ctx, builder, dir, input)
	}
	if err != nil {
		return domain.ProposalPage{}, err
	}

	metrics.ObserveSearch(string(tripType), len(proposals), time.Since(start))
	s.log.DebugContext(ctx, "trip search",
		"type", tripType,
		"proposals", len(proposals),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return itinerary.Paginate(itinerary.Rank(proposals, key), pagination), nil
}

func (s *SearchService) oneWay(ctx context.Context, b *itinerary.Builder, dir *itinerary.Directory, input SearchInput) ([]domain.Proposal, error) {
	origins, destinations, err := resolveRoute(dir, input.Origin, input.Destination, "origin", "destination")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(input.DepartureDate, "departure_date")
	if err != nil {
		return nil, err
	}
	return b.OneWay(ctx, origins, destinations, date, input.PreferredAirline)
}

func (s *SearchService) roundTrip(ctx context.Context, b *itinerary.Builder, dir *itinerary.Directory, input SearchInput) ([]domain.Proposal, error) {
	origins, destinations, err := resolveRoute(dir, input.Origin, input.Destination, "origin", "destination")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(input.DepartureDate, "departure_date")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.ReturnDate) == "" {
		return nil, &domain.ValidationError{Field: "return_date", Message: "return_date is required for round_trip"}
	}
	returnDate, err := parseDate(input.ReturnDate, "return_date")
	if err != nil {
		return nil, err
	}

	outbound, err := b.OneWay(ctx, origins, destinations, date, input.PreferredAirline)
	if err != nil {
		return nil, err
	}
	inbound, err := b.OneWay(ctx, destinations, origins, returnDate, input.PreferredAirline)
	if err != nil {
		return nil, err
	}
	return itinerary.ComposeRoundTrip(outbound, inbound), nil
}

func (s *SearchService) multiCity(ctx context.Context, b *itinerary.Builder, dir *itinerary.Directory, input SearchInput) ([]domain.Proposal, error) {
	if n := len(input.Legs); n < domain.MinMultiCitySegments || n > domain.MaxMultiCitySegments {
		return nil, &domain.ValidationError{
			Field:   "legs",
			Message: fmt.Sprintf("multi_city requires between %d and %d legs", domain.MinMultiCitySegments, domain.MaxMultiCitySegments),
		}
	}

	legs := make([]itinerary.Leg, len(input.Legs))
	for i, in := range input.Legs {
		prefix := fmt.Sprintf("legs[%d].", i)
		origins, destinations, err := resolveRoute(dir, in.Origin, in.Destination, prefix+"origin", prefix+"destination")
		if err != nil {
			return nil, err
		}
		date, err := parseDate(in.DepartureDate, prefix+"departure_date")
		if err != nil {
			return nil, err
		}
		if i > 0 && !overlaps(legs[i-1].DestinationCodes, origins) {
			return nil, &domain.ValidationError{
				Field:   prefix + "origin",
				Message: "Leg must depart from where the previous leg arrives",
			}
		}
		legs[i] = itinerary.Leg{OriginCodes: origins, DestinationCodes: destinations, Date: date}
	}

	return b.MultiCity(ctx, legs, input.PreferredAirline)
}

func resolveRoute(dir *itinerary.Directory, origin, destination, originField, destinationField string) ([]string, []string, error) {
	origins, err := resolve(dir, origin, originField)
	if err != nil {
		return nil, nil, err
	}
	destinations, err := resolve(dir, destination, destinationField)
	if err != nil {
		return nil, nil, err
	}
	return origins, destinations, nil
}

func resolve(dir *itinerary.Directory, token, field string) ([]string, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &domain.ValidationError{Field: field, Message: field + " is required"}
	}
	codes, err := dir.Resolve(token)
	if err != nil {
		var unknown *domain.UnknownLocationError
		if errors.As(err, &unknown) {
			return nil, unknown.InField(field)
		}
		return nil, err
	}
	return codes, nil
}

func parseDate(s, field string) (domain.Date, error) {
	if strings.TrimSpace(s) == "" {
		return domain.Date{}, &domain.ValidationError{Field: field, Message: field + " is required"}
	}
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return domain.Date{}, &domain.ValidationError{Field: field, Message: field + " must be a date in YYYY-MM-DD format"}
	}
	return d, nil
}

func overlaps(a, b []string) bool {
	return slices.ContainsFunc(a, func(code string) bool { return slices.Contains(b, code) })
}

var _ SearchUseCase = (*SearchService)(nil)
