package services

import (
	"errors"
	"fmt"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/sirupsen/logrus"
)

// BusCatalog is the subset of the bus repository the booking flow needs.
type BusCatalog interface {
	GetByID(id string) (*models.Bus, error)
	GetAll() ([]models.Bus, error)
	Create(bus *models.Bus) error
}

// SeatStore owns per-(bus, travelDate) seat state.
type SeatStore interface {
	GetSeats(busID, travelDate string) ([]models.Seat, error)
	TryReserve(busID, travelDate, seatNumber string) error
	Release(busID, travelDate, seatNumber string) error
}

// BookingLedger is the persistent record of bookings.
type BookingLedger interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByUserID(userID string) ([]models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) error
}

// BookingService orchestrates seat reservation and the booking ledger.
// The seat store is the source of truth for availability; the ledger is
// only written after the seat is held.
type BookingService struct {
	buses    BusCatalog
	seats    SeatStore
	bookings BookingLedger
	logger   *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(buses BusCatalog, seats SeatStore, bookings BookingLedger, logger *logrus.Logger) *BookingService {
	return &BookingService{
		buses:    buses,
		seats:    seats,
		bookings: bookings,
		logger:   logger,
	}
}

// CreateBooking reserves the seat first, then records the booking. If the
// ledger write fails the reservation is rolled back so the seat is not
// stranded. Reserve-then-record means no window exists where two users can
// both see the seat as free and both book it.
func (s *BookingService) CreateBooking(userID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidRequest, err.Error())
	}

	if err := s.seats.TryReserve(req.BusID, req.TravelDate, req.SeatNumber); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:     userID,
		BusID:      req.BusID,
		SeatNumber: req.SeatNumber,
		TravelDate: req.TravelDate,
		Status:     models.BookingStatusConfirmed,
		Passenger:  req.Passenger,
	}

	if err := s.bookings.Create(booking); err != nil {
		// Compensate: give the seat back before reporting failure.
		if releaseErr := s.seats.Release(req.BusID, req.TravelDate, req.SeatNumber); releaseErr != nil {
			s.logger.WithFields(logrus.Fields{
				"bus_id":      req.BusID,
				"travel_date": req.TravelDate,
				"seat_number": req.SeatNumber,
				"error":       releaseErr.Error(),
			}).Error("Failed to release seat after ledger write failure")
		}
		return nil, fmt.Errorf("%w: %s", models.ErrStorageFailure, err.Error())
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"user_id":     userID,
		"bus_id":      req.BusID,
		"travel_date": req.TravelDate,
		"seat_number": req.SeatNumber,
	}).Info("Booking created")

	return booking, nil
}

// CancelBooking cancels a booking and frees its seat. Only the owner can
// cancel, and a booking cancels at most once. The status write happens
// before the release so a crash between the two leaves the seat taken
// rather than double-bookable.
func (s *BookingService) CancelBooking(userID, bookingID string) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, models.ErrUnauthorized
	}

	if booking.IsCancelled() {
		return nil, models.ErrAlreadyCancelled
	}

	// The ledger write is conditional, so of two cancels racing past the
	// check above only one reaches the release below.
	if err := s.bookings.UpdateStatus(bookingID, models.BookingStatusCancelled); err != nil {
		if errors.Is(err, models.ErrAlreadyCancelled) || errors.Is(err, models.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", models.ErrStorageFailure, err.Error())
	}
	booking.Status = models.BookingStatusCancelled

	if err := s.seats.Release(booking.BusID, booking.TravelDate, booking.SeatNumber); err != nil {
		// The booking is cancelled but the seat is still marked taken.
		// Surface the inconsistency instead of pretending it worked.
		s.logger.WithFields(logrus.Fields{
			"booking_id":  bookingID,
			"bus_id":      booking.BusID,
			"travel_date": booking.TravelDate,
			"seat_number": booking.SeatNumber,
			"error":       err.Error(),
		}).Error("Booking cancelled but seat release failed")
		return nil, fmt.Errorf("%w: booking cancelled but seat release failed: %s",
			models.ErrStorageFailure, err.Error())
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"user_id":    userID,
	}).Info("Booking cancelled")

	return booking, nil
}

// GetBusSeats returns the seat map for a bus on a travel date.
func (s *BookingService) GetBusSeats(busID, travelDate string) (*models.SeatAvailabilityResponse, error) {
	seats, err := s.seats.GetSeats(busID, travelDate)
	if err != nil {
		return nil, err
	}

	return &models.SeatAvailabilityResponse{
		TravelDate: travelDate,
		Seats:      seats,
	}, nil
}

// GetUserBookings returns all of a user's bookings joined with bus details.
// A failed bus lookup degrades that one entry to placeholder values instead
// of failing the whole listing.
func (s *BookingService) GetUserBookings(userID string) ([]models.EnrichedBooking, error) {
	bookings, err := s.bookings.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrStorageFailure, err.Error())
	}

	enriched := make([]models.EnrichedBooking, 0, len(bookings))
	for _, booking := range bookings {
		entry := models.EnrichedBooking{
			ID:          booking.ID,
			BusID:       booking.BusID,
			BusName:     "Unknown Bus",
			SeatNumber:  booking.SeatNumber,
			TravelDate:  booking.TravelDate,
			BookingDate: booking.BookingDate,
			Status:      booking.Status,
			Passenger:   booking.Passenger,
		}

		bus, err := s.buses.GetByID(booking.BusID)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"booking_id": booking.ID,
				"bus_id":     booking.BusID,
				"error":      err.Error(),
			}).Warn("Bus lookup failed while enriching booking")
		} else {
			entry.BusName = bus.BusNumber
			entry.BusType = bus.BusType
			entry.From = bus.Route.From
			entry.To = bus.Route.To
			entry.Departure = bus.Route.DepartureTime
			entry.Arrival = bus.Route.ArrivalTime
			entry.TotalPrice = bus.Route.Price
		}

		enriched = append(enriched, entry)
	}

	return enriched, nil
}

// GetBuses returns the full bus catalog.
func (s *BookingService) GetBuses() ([]models.Bus, error) {
	return s.buses.GetAll()
}

// GetBus returns one bus by ID.
func (s *BookingService) GetBus(busID string) (*models.Bus, error) {
	return s.buses.GetByID(busID)
}

// CreateBus adds a bus to the catalog. Admin only, enforced at the route.
func (s *BookingService) CreateBus(req *models.CreateBusRequest) (*models.Bus, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidRequest, err.Error())
	}

	bus := &models.Bus{
		BusNumber:  req.BusNumber,
		BusType:    req.BusType,
		TotalSeats: req.TotalSeats,
		Route:      req.Route,
	}

	if err := s.buses.Create(bus); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrStorageFailure, err.Error())
	}

	s.logger.WithFields(logrus.Fields{
		"bus_id":     bus.ID,
		"bus_number": bus.BusNumber,
	}).Info("Bus added to catalog")

	return bus, nil
}
