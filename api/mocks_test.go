package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/tripsearch/internal/domain"
	"github.com/Domenick1991/tripsearch/internal/service/booking"
	"github.com/Domenick1991/tripsearch/internal/service/search"
)

type MockSearchUseCase struct {
	mock.Mock
}

func (m *MockSearchUseCase) Search(ctx context.Context, input search.SearchInput) (domain.ProposalPage, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.ProposalPage), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateTrip(ctx context.Context, input booking.CreateTripInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetTrip(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListTrips(ctx context.Context, input booking.ListTripsInput) (domain.BookingPage, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.BookingPage), args.Error(1)
}

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) Airports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCatalogUseCase) SearchAirports(ctx context.Context, query string) ([]domain.Airport, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockCatalogUseCase) Airlines(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *MockCatalogUseCase) FindFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCatalogUseCase) FlightsByID(ctx context.Context, ids []int64) (map[int64]domain.Flight, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]domain.Flight), args.Error(1)
}
