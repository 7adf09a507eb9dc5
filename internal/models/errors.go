package models

import "errors"

// Sentinel errors returned by repositories and services. Handlers map these
// to HTTP status codes with errors.Is.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrBusNotFound       = errors.New("bus not found")
	ErrInvalidSeat       = errors.New("invalid seat number")
	ErrSeatAlreadyBooked = errors.New("seat is already booked")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrUnauthorized      = errors.New("booking belongs to another user")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrStorageFailure    = errors.New("storage failure")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
