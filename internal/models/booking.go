package models

import (
	"errors"
	"strings"
	"time"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Passenger holds the optional passenger details attached to a booking.
type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Booking represents one seat reserved by one user on one bus/date.
// Immutable after creation except for the status field, which transitions
// Confirmed -> Cancelled exactly once.
type Booking struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	BusID       string        `json:"bus_id"`
	SeatNumber  string        `json:"seat_number"`
	TravelDate  string        `json:"travel_date"`
	BookingDate time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
	Passenger   *Passenger    `json:"passenger,omitempty"`
}

// CreateBookingRequest represents the request to create a booking.
type CreateBookingRequest struct {
	BusID      string     `json:"bus_id" binding:"required"`
	TravelDate string     `json:"travel_date" binding:"required"`
	SeatNumber string     `json:"seat_number" binding:"required"`
	Passenger  *Passenger `json:"passenger,omitempty"`
}

// Validate validates the create booking request.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.BusID) == "" {
		return errors.New("bus_id is required")
	}
	if strings.TrimSpace(r.TravelDate) == "" {
		return errors.New("travel_date is required")
	}
	if strings.TrimSpace(r.SeatNumber) == "" {
		return errors.New("seat_number is required")
	}
	return nil
}

// IsCancelled reports whether the booking has reached its terminal state.
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// EnrichedBooking is a booking joined with bus metadata for display.
// When the bus lookup fails the bus fields carry placeholder values so a
// single bad join never hides the user's other bookings.
type EnrichedBooking struct {
	ID          string        `json:"id"`
	BusID       string        `json:"bus_id"`
	BusName     string        `json:"bus_name"`
	BusType     string        `json:"bus_type"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Departure   string        `json:"departure"`
	Arrival     string        `json:"arrival"`
	TotalPrice  float64       `json:"total_price"`
	SeatNumber  string        `json:"seat_number"`
	TravelDate  string        `json:"travel_date"`
	BookingDate time.Time     `json:"booking_date"`
	Status      BookingStatus `json:"status"`
	Passenger   *Passenger    `json:"passenger,omitempty"`
}
