package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeats(t *testing.T) {
	seats := DefaultSeats(44)
	require.Len(t, seats, 44)

	assert.Equal(t, "1", seats[0].SeatNumber)
	assert.Equal(t, "44", seats[43].SeatNumber)
	for _, seat := range seats {
		assert.True(t, seat.IsAvailable)
	}
}

func TestDefaultSeatsZero(t *testing.T) {
	assert.Empty(t, DefaultSeats(0))
}

func TestCreateBookingRequestValidate(t *testing.T) {
	valid := CreateBookingRequest{BusID: "bus-1", TravelDate: "2026-09-15", SeatNumber: "12"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"Missing Bus", CreateBookingRequest{TravelDate: "2026-09-15", SeatNumber: "12"}},
		{"Missing Date", CreateBookingRequest{BusID: "bus-1", SeatNumber: "12"}},
		{"Missing Seat", CreateBookingRequest{BusID: "bus-1", TravelDate: "2026-09-15"}},
		{"Whitespace Seat", CreateBookingRequest{BusID: "bus-1", TravelDate: "2026-09-15", SeatNumber: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}

func TestBookingIsCancelled(t *testing.T) {
	booking := Booking{Status: BookingStatusConfirmed}
	assert.False(t, booking.IsCancelled())

	booking.Status = BookingStatusCancelled
	assert.True(t, booking.IsCancelled())
}
