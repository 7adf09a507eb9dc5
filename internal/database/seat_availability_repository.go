package database

import (
	"fmt"
	"strconv"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/google/uuid"
)

// SeatAvailabilityRepository owns the per-(bus, travelDate) seat state.
// Rows are materialized lazily: a (bus, date) pair with no rows means every
// seat is available, and rows are only written when the first reservation
// for that pair arrives.
type SeatAvailabilityRepository struct {
	db    DB
	buses *BusRepository
}

// NewSeatAvailabilityRepository creates a new seat availability repository
func NewSeatAvailabilityRepository(db DB, buses *BusRepository) *SeatAvailabilityRepository {
	return &SeatAvailabilityRepository{db: db, buses: buses}
}

// validateSeat checks that seatNumber names a seat the bus actually has.
// Seat numbers are canonical decimal strings "1".."totalSeats"; forms Atoi
// would normalize ("07", "+7") match no stored row and are rejected here.
func validateSeat(seatNumber string, totalSeats int) error {
	n, err := strconv.Atoi(seatNumber)
	if err != nil || n < 1 || n > totalSeats || strconv.Itoa(n) != seatNumber {
		return models.ErrInvalidSeat
	}
	return nil
}

// GetSeats returns the full seat map for a bus on a travel date. Stored
// rows are returned as-is; the bus catalog is only consulted when nothing
// is stored yet, to build the virtual all-available map.
func (r *SeatAvailabilityRepository) GetSeats(busID, travelDate string) ([]models.Seat, error) {
	if _, err := uuid.Parse(busID); err != nil {
		return nil, models.ErrBusNotFound
	}

	query := `
		SELECT seat_number, is_available
		FROM seat_availability
		WHERE bus_id = $1 AND travel_date = $2
		ORDER BY seat_index`

	rows, err := r.db.Query(query, busID, travelDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query seat availability: %w", err)
	}
	defer rows.Close()

	seats := make([]models.Seat, 0)
	for rows.Next() {
		var seat models.Seat
		if err := rows.Scan(&seat.SeatNumber, &seat.IsAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seats: %w", err)
	}

	if len(seats) == 0 {
		bus, err := r.buses.GetByID(busID)
		if err != nil {
			return nil, err
		}
		return models.DefaultSeats(bus.TotalSeats), nil
	}

	return seats, nil
}

// TryReserve atomically flips one seat from available to taken. Exactly one
// of any number of concurrent callers for the same seat succeeds; the rest
// get ErrSeatAlreadyBooked.
func (r *SeatAvailabilityRepository) TryReserve(busID, travelDate, seatNumber string) error {
	bus, err := r.buses.GetByID(busID)
	if err != nil {
		return err
	}
	if err := validateSeat(seatNumber, bus.TotalSeats); err != nil {
		return err
	}

	if err := r.materialize(busID, travelDate, bus.TotalSeats); err != nil {
		return err
	}

	// Conditional update is the reservation itself. Zero rows affected
	// means another booking got the seat first.
	result, err := r.db.Exec(`
		UPDATE seat_availability
		SET is_available = FALSE, updated_at = NOW()
		WHERE bus_id = $1 AND travel_date = $2 AND seat_number = $3
			AND is_available = TRUE`,
		busID, travelDate, seatNumber)
	if err != nil {
		return fmt.Errorf("failed to reserve seat: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check reservation result: %w", err)
	}
	if affected == 0 {
		return models.ErrSeatAlreadyBooked
	}

	return nil
}

// Release marks a seat available again. Releasing a seat that was never
// materialized or is already available is a no-op, so Release is safe to
// call from compensation paths without checking prior state.
func (r *SeatAvailabilityRepository) Release(busID, travelDate, seatNumber string) error {
	bus, err := r.buses.GetByID(busID)
	if err != nil {
		return err
	}
	if err := validateSeat(seatNumber, bus.TotalSeats); err != nil {
		return err
	}

	_, err = r.db.Exec(`
		UPDATE seat_availability
		SET is_available = TRUE, updated_at = NOW()
		WHERE bus_id = $1 AND travel_date = $2 AND seat_number = $3`,
		busID, travelDate, seatNumber)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}

	return nil
}

// materialize writes the all-available seat rows for a (bus, date) pair if
// they do not exist yet. ON CONFLICT DO NOTHING makes concurrent first
// reservations converge on one row set.
func (r *SeatAvailabilityRepository) materialize(busID, travelDate string, totalSeats int) error {
	_, err := r.db.Exec(`
		INSERT INTO seat_availability (bus_id, travel_date, seat_number, seat_index, is_available)
		SELECT $1, $2, n::text, n, TRUE
		FROM generate_series(1, $3) AS n
		ON CONFLICT (bus_id, travel_date, seat_number) DO NOTHING`,
		busID, travelDate, totalSeats)
	if err != nil {
		return fmt.Errorf("failed to materialize seats: %w", err)
	}
	return nil
}
