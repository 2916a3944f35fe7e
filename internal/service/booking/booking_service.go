package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Domenick1991/tripsearch/internal/domain"
	"github.com/Domenick1991/tripsearch/internal/itinerary"
	"github.com/Domenick1991/tripsearch/internal/kafka"
	"github.com/Domenick1991/tripsearch/internal/metrics"
	"github.com/Domenick1991/tripsearch/internal/repository"
)

type BookingUseCase interface {
	CreateTrip(ctx context.Context, input CreateTripInput) (*domain.Booking, error)
	GetTrip(ctx context.Context, id int64) (*domain.Booking, error)
	ListTrips(ctx context.Context, input ListTripsInput) (domain.BookingPage, error)
}

// Catalog supplies the data a booking is validated against.
type Catalog interface {
	Airports(ctx context.Context) ([]domain.Airport, error)
	FlightsByID(ctx context.Context, ids []int64) (map[int64]domain.Flight, error)
}

// notificationRetries bounds delivery attempts for the confirmation event.
const notificationRetries = 3

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
	PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error
}

type SegmentInput struct {
	FlightID      int64
	DepartureDate string
}

type CreateTripInput struct {
	Type     string
	Segments []SegmentInput
}

type ListTripsInput struct {
	Sort    string
	Dir     string
	Page    int
	PerPage int
}

type BookingService struct {
	trips              repository.TripRepository
	catalog            Catalog
	producer           Producer
	tripsTopic         string
	notificationsTopic string
	now                func() time.Time
	log                *slog.Logger
}

type BookingServiceOption func(*BookingService)

// WithProducer publishes trip events to topic after every committed trip.
func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.tripsTopic = topic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log *slog.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(trips repository.TripRepository, catalog Catalog, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		trips:   trips,
		catalog: catalog,
		now:     time.Now,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateTrip re-validates the chosen flights against the current catalog and
// clock, then stores the itinerary. Nothing is stored when validation fails.
func (s *BookingService) CreateTrip(ctx context.Context, input CreateTripInput) (*domain.Booking, error) {
	trip, err := s.createTrip(ctx, input)
	switch {
	case err == nil:
		metrics.IncTrip(metrics.TripCreated)
	case errors.Is(err, domain.ErrValidation):
		metrics.IncTrip(metrics.TripRejected)
	default:
		metrics.IncTrip(metrics.TripFailed)
	}
	return trip, err
}

func (s *BookingService) createTrip(ctx context.Context, input CreateTripInput) (*domain.Booking, error) {
	tripType, err := domain.ParseTripType(input.Type)
	if err != nil {
		return nil, err
	}
	if err := tripType.CheckSegmentCount(len(input.Segments)); err != nil {
		return nil, err
	}

	choices := make([]itinerary.Choice, len(input.Segments))
	ids := make([]int64, 0, len(input.Segments))
	for i, seg := range input.Segments {
		date, err := domain.ParseDate(strings.TrimSpace(seg.DepartureDate))
		if err != nil {
			return nil, &domain.ValidationError{
				Field:   fmt.Sprintf("segments[%d].departure_date", i),
				Message: "departure_date must be a date in YYYY-MM-DD format",
			}
		}
		choices[i] = itinerary.Choice{FlightID: seg.FlightID, Date: date}
		ids = append(ids, seg.FlightID)
	}

	flights, err := s.catalog.FlightsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}
	airports, err := s.catalog.Airports(ctx)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	dir, err := itinerary.NewDirectory(airports)
	if err != nil {
		return nil, fmt.Errorf("build airport directory: %w", err)
	}

	proposal, err := itinerary.ValidateBooking(tripType, choices, flights, dir, itinerary.NewWindow(s.now()))
	if err != nil {
		return nil, err
	}

	trip := &domain.Booking{
		Reference: uuid.NewString(),
		Proposal:  proposal,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("store trip: %w", err)
	}

	if err := s.publish(ctx, trip); err != nil {
		metrics.IncKafkaError("producer", "publish")
		s.log.WarnContext(ctx, "failed to publish trip event", "reference", trip.Reference, "trip_id", trip.ID, "error", err)
	}
	s.log.InfoContext(ctx, "trip created", "trip_id", trip.ID, "type", trip.Type, "total_price", trip.TotalPrice.String())
	return trip, nil
}

func (s *BookingService) GetTrip(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.trips.GetByID(ctx, id)
}

func (s *BookingService) ListTrips(ctx context.Context, input ListTripsInput) (domain.BookingPage, error) {
	sort, err := domain.ParseTripSort(input.Sort)
	if err != nil {
		return domain.BookingPage{}, err
	}
	desc, err := domain.ParseSortDescending(input.Dir)
	if err != nil {
		return domain.BookingPage{}, err
	}
	pagination, err := domain.NewPaginationParams(input.Page, input.PerPage)
	if err != nil {
		return domain.BookingPage{}, err
	}

	trips, total, err := s.trips.List(ctx, domain.TripListParams{
		Sort:             sort,
		Descending:       desc,
		PaginationParams: pagination,
	})
	if err != nil {
		return domain.BookingPage{}, err
	}
	return domain.BookingPage{
		Items:   trips,
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
		Total:   total,
	}, nil
}

func (s *BookingService) publish(ctx context.Context, trip *domain.Booking) error {
	if s.producer == nil || s.tripsTopic == "" {
		return nil
	}
	event := NewTripEvent(kafka.EventTripCreated, trip)
	if err := s.producer.Publish(ctx, s.tripsTopic, trip.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.PublishWithRetry(ctx, s.notificationsTopic, trip.Reference, event, notificationRetries)
	}
	return nil
}

// NewTripEvent flattens a stored trip into its wire event.
func NewTripEvent(eventType string, trip *domain.Booking) kafka.TripEvent {
	segments := make([]kafka.SegmentEvent, len(trip.Segments))
	for i, s := range trip.Segments {
		segments[i] = kafka.SegmentEvent{
			Index:       s.Index,
			FlightID:    s.Flight.ID,
			Flight:      s.Flight.AirlineCode + " " + s.Flight.Number,
			From:        s.Flight.OriginCode,
			To:          s.Flight.DestinationCode,
			DepartureAt: s.DepartureLocal.Format(time.RFC3339),
			ArrivalAt:   s.ArrivalLocal.Format(time.RFC3339),
		}
	}
	return kafka.TripEvent{
		Type:       eventType,
		TripID:     trip.ID,
		Reference:  trip.Reference,
		TripType:   string(trip.Type),
		TotalPrice: trip.TotalPrice.String(),
		Currency:   trip.Currency,
		Segments:   segments,
		CreatedAt:  trip.CreatedAt,
	}
}

var _ BookingUseCase = (*BookingService)(nil)
