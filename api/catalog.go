package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/tripsearch/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/airlines", h.airlines)
	router.GET("/airports", h.airports)
}

func (h *CatalogHandler) airlines(c *gin.Context) {
	airlines, err := h.service.Airlines(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[[]airlineResponse]{Data: newAirlineResponses(airlines)})
}

// airports matches the query against code, city code, city and name.
func (h *CatalogHandler) airports(c *gin.Context) {
	airports, err := h.service.SearchAirports(c.Request.Context(), c.Query("query"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dataResponse[[]airportResponse]{Data: newAirportResponses(airports)})
}
