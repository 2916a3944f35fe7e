package api

import (
	"time"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

// localLayout always prints the numeric offset, including +00:00.
const localLayout = "2006-01-02T15:04:05-07:00"

type metaResponse struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

type pageResponse[T any] struct {
	Meta metaResponse `json:"meta"`
	Data []T          `json:"data"`
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}

type airlineResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type airportResponse struct {
	Code        string `json:"code"`
	CityCode    string `json:"city_code"`
	Name        string `json:"name"`
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	Timezone    string `json:"timezone"`
}

type airportRefResponse struct {
	Code     string `json:"code"`
	Timezone string `json:"timezone"`
}

type flightResponse struct {
	ID               int64              `json:"id"`
	Airline          airlineResponse    `json:"airline"`
	Number           string             `json:"number"`
	DepartureAirport airportRefResponse `json:"departure_airport"`
	ArrivalAirport   airportRefResponse `json:"arrival_airport"`
	Price            string             `json:"price"`
}

type endpointResponse struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
	AtLocal  string `json:"at_local"`
	AtUTC    string `json:"at_utc"`
}

type segmentResponse struct {
	Index     int              `json:"segment_index"`
	Flight    flightResponse   `json:"flight"`
	Departure endpointResponse `json:"departure"`
	Arrival   endpointResponse `json:"arrival"`
	Price     string           `json:"price"`
}

type proposalResponse struct {
	Type       string            `json:"type"`
	TotalPrice string            `json:"total_price"`
	Currency   string            `json:"currency"`
	Segments   []segmentResponse `json:"segments"`
}

type tripResponse struct {
	ID         int64             `json:"id"`
	Reference  string            `json:"reference"`
	Type       string            `json:"type"`
	CreatedAt  string            `json:"created_at"`
	TotalPrice string            `json:"total_price"`
	Currency   string            `json:"currency"`
	Segments   []segmentResponse `json:"segments"`
}

func newAirlineResponses(airlines []domain.Airline) []airlineResponse {
	out := make([]airlineResponse, len(airlines))
	for i, a := range airlines {
		out[i] = airlineResponse{Code: a.Code, Name: a.Name}
	}
	return out
}

func newAirportResponses(airports []domain.Airport) []airportResponse {
	out := make([]airportResponse, len(airports))
	for i, a := range airports {
		out[i] = airportResponse{
			Code:        a.Code,
			CityCode:    a.CityCode,
			Name:        a.Name,
			City:        a.City,
			CountryCode: a.CountryCode,
			Timezone:    a.Timezone,
		}
	}
	return out
}

func newEndpointResponse(tz string, local, utc time.Time) endpointResponse {
	return endpointResponse{
		Date:     local.Format(domain.DateLayout),
		Time:     local.Format("15:04"),
		Timezone: tz,
		AtLocal:  local.Format(localLayout),
		AtUTC:    utc.UTC().Format(time.RFC3339),
	}
}

func newSegmentResponses(segments []domain.Segment) []segmentResponse {
	out := make([]segmentResponse, len(segments))
	for i, s := range segments {
		out[i] = segmentResponse{
			Index: s.Index,
			Flight: flightResponse{
				ID:               s.Flight.ID,
				Airline:          airlineResponse{Code: s.Flight.AirlineCode, Name: s.Flight.AirlineName},
				Number:           s.Flight.Number,
				DepartureAirport: airportRefResponse{Code: s.Flight.OriginCode, Timezone: s.DepartureTZ},
				ArrivalAirport:   airportRefResponse{Code: s.Flight.DestinationCode, Timezone: s.ArrivalTZ},
				Price:            s.Flight.Price.String(),
			},
			Departure: newEndpointResponse(s.DepartureTZ, s.DepartureLocal, s.DepartureUTC),
			Arrival:   newEndpointResponse(s.ArrivalTZ, s.ArrivalLocal, s.ArrivalUTC),
			Price:     s.Price.String(),
		}
	}
	return out
}

func newProposalResponse(p domain.Proposal) proposalResponse {
	return proposalResponse{
		Type:       string(p.Type),
		TotalPrice: p.TotalPrice.String(),
		Currency:   p.Currency,
		Segments:   newSegmentResponses(p.Segments),
	}
}

func newTripResponse(t *domain.Booking) tripResponse {
	return tripResponse{
		ID:         t.ID,
		Reference:  t.Reference,
		Type:       string(t.Type),
		CreatedAt:  t.CreatedAt.UTC().Format(time.RFC3339),
		TotalPrice: t.TotalPrice.String(),
		Currency:   t.Currency,
		Segments:   newSegmentResponses(t.Segments),
	}
}
