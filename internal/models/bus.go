package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Route describes where and when a bus runs. Times are display strings
// ("08:15 AM"), not parsed timestamps.
type Route struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
}

// Bus represents an entry in the bus catalog. The booking core treats it
// as immutable reference data.
type Bus struct {
	ID         string    `json:"id"`
	BusNumber  string    `json:"bus_number"`
	BusType    string    `json:"bus_type"`
	TotalSeats int       `json:"total_seats"`
	Route      Route     `json:"route"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateBusRequest represents the request to add a bus to the catalog.
type CreateBusRequest struct {
	BusNumber  string `json:"bus_number" binding:"required"`
	BusType    string `json:"bus_type" binding:"required"`
	TotalSeats int    `json:"total_seats" binding:"required"`
	Route      Route  `json:"route" binding:"required"`
}

// Validate validates the create bus request.
func (r *CreateBusRequest) Validate() error {
	if strings.TrimSpace(r.BusNumber) == "" {
		return errors.New("bus_number is required")
	}
	if strings.TrimSpace(r.BusType) == "" {
		return errors.New("bus_type is required")
	}
	if r.TotalSeats < 1 {
		return errors.New("total_seats must be positive")
	}
	if strings.TrimSpace(r.Route.From) == "" || strings.TrimSpace(r.Route.To) == "" {
		return errors.New("route endpoints are required")
	}
	return nil
}

// Seat is the availability state of one numbered seat on one bus/date.
type Seat struct {
	SeatNumber  string `json:"seat_number"`
	IsAvailable bool   `json:"is_available"`
}

// SeatAvailabilityResponse is the payload returned for a seat map query.
type SeatAvailabilityResponse struct {
	TravelDate string `json:"travel_date"`
	Seats      []Seat `json:"seats"`
}

// DefaultSeats derives the virtual seat sequence for a bus with no stored
// availability record: every seat available, numbered "1".."totalSeats".
func DefaultSeats(totalSeats int) []Seat {
	seats := make([]Seat, 0, totalSeats)
	for i := 1; i <= totalSeats; i++ {
		seats = append(seats, Seat{
			SeatNumber:  strconv.Itoa(i),
			IsAvailable: true,
		})
	}
	return seats
}
