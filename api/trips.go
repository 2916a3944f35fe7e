package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/tripsearch/internal/service/booking"
	"github.com/Domenick1991/tripsearch/internal/service/search"
)

type TripHandler struct {
	search   search.SearchUseCase
	bookings booking.BookingUseCase
}

type legRequest struct {
	Origin        string `json:"origin" binding:"required,max=5"`
	Destination   string `json:"destination" binding:"required,max=5"`
	DepartureDate string `json:"departure_date" binding:"required"`
}

type searchRequest struct {
	Type             string       `json:"type" binding:"required,oneof=one_way round_trip multi_city"`
	Origin           string       `json:"origin" binding:"required_unless=Type multi_city,max=5"`
	Destination      string       `json:"destination" binding:"required_unless=Type multi_city,max=5"`
	DepartureDate    string       `json:"departure_date" binding:"required_unless=Type multi_city"`
	ReturnDate       string       `json:"return_date"`
	Legs             []legRequest `json:"legs" binding:"omitempty,dive"`
	PreferredAirline string       `json:"preferred_airline" binding:"omitempty,max=3"`
	Sort             string       `json:"sort" binding:"omitempty,oneof=price departure_at"`
	Page             int          `json:"page" binding:"omitempty,min=1"`
	PerPage          int          `json:"per_page" binding:"omitempty,min=1,max=100"`
}

type segmentRequest struct {
	FlightID      int64  `json:"flight_id" binding:"required,gt=0"`
	DepartureDate string `json:"departure_date" binding:"required"`
}

type createTripRequest struct {
	Type     string           `json:"type" binding:"required,oneof=one_way round_trip multi_city"`
	Segments []segmentRequest `json:"segments" binding:"required,min=1,max=5,dive"`
}

type listTripsRequest struct {
	Sort    string `form:"sort" binding:"omitempty,oneof=created_at price departure_at"`
	Dir     string `form:"dir" binding:"omitempty,oneof=asc desc"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	PerPage int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

func NewTripHandler(search search.SearchUseCase, bookings booking.BookingUseCase) *TripHandler {
	useJSONFieldNames()
	return &TripHandler{search: search, bookings: bookings}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.POST("/search", h.searchTrips)
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
}

func (h *TripHandler) searchTrips(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	legs := make([]search.LegInput, len(req.Legs))
	for i, l := range req.Legs {
		legs[i] = search.LegInput{Origin: l.Origin, Destination: l.Destination, DepartureDate: l.DepartureDate}
	}
	page, err := h.search.Search(c.Request.Context(), search.SearchInput{
		Type:             req.Type,
		Origin:           req.Origin,
		Destination:      req.Destination,
		DepartureDate:    req.DepartureDate,
		ReturnDate:       req.ReturnDate,
		Legs:             legs,
		PreferredAirline: req.PreferredAirline,
		Sort:             req.Sort,
		Page:             req.Page,
		PerPage:          req.PerPage,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	data := make([]proposalResponse, len(page.Items))
	for i, p := range page.Items {
		data[i] = newProposalResponse(p)
	}
	c.JSON(http.StatusOK, pageResponse[proposalResponse]{
		Meta: metaResponse{Page: page.Page, PerPage: page.PerPage, Total: page.Total},
		Data: data,
	})
}

func (h *TripHandler) create(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	segments := make([]booking.SegmentInput, len(req.Segments))
	for i, s := range req.Segments {
		segments[i] = booking.SegmentInput{FlightID: s.FlightID, DepartureDate: s.DepartureDate}
	}
	trip, err := h.bookings.CreateTrip(c.Request.Context(), booking.CreateTripInput{
		Type:     req.Type,
		Segments: segments,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse[tripResponse]{Data: newTripResponse(trip)})
}

func (h *TripHandler) list(c *gin.Context) {
	var req listTripsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}

	page, err := h.bookings.ListTrips(c.Request.Context(), booking.ListTripsInput{
		Sort:    req.Sort,
		Dir:     req.Dir,
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	data := make([]tripResponse, len(page.Items))
	for i := range page.Items {
		data[i] = newTripResponse(&page.Items[i])
	}
	c.JSON(http.StatusOK, pageResponse[tripResponse]{
		Meta: metaResponse{Page: page.Page, PerPage: page.PerPage, Total: page.Total},
		Data: data,
	})
}

func (h *TripHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	trip, err := h.bookings.GetTrip(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[tripResponse]{Data: newTripResponse(trip)})
}
