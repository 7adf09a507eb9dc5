package handlers

import (
	"net/http"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/geeked101/bus-book/internal/services"
	"github.com/gin-gonic/gin"
)

// BusHandler exposes the bus catalog and seat map endpoints
type BusHandler struct {
	bookingService *services.BookingService
}

// NewBusHandler creates a new bus handler
func NewBusHandler(bookingService *services.BookingService) *BusHandler {
	return &BusHandler{bookingService: bookingService}
}

// GetBuses retrieves the full bus catalog
// GET /api/v1/buses
func (h *BusHandler) GetBuses(c *gin.Context) {
	buses, err := h.bookingService.GetBuses()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, buses)
}

// GetBus retrieves a single bus
// GET /api/v1/buses/:id
func (h *BusHandler) GetBus(c *gin.Context) {
	bus, err := h.bookingService.GetBus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bus)
}

// CreateBus adds a bus to the catalog. Admin role required.
// POST /api/v1/buses
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bus, err := h.bookingService.CreateBus(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bus)
}

// GetBusSeats retrieves the seat map for a bus on a travel date
// GET /api/v1/buses/:id/seats?date=YYYY-MM-DD
func (h *BusHandler) GetBusSeats(c *gin.Context) {
	travelDate := c.Query("date")
	if travelDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	seats, err := h.bookingService.GetBusSeats(c.Param("id"), travelDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seats)
}
