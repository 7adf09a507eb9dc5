package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/google/uuid"
)

// BookingRepository is the booking ledger
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, bus_id, seat_number, travel_date, booking_date, status, passenger_name, passenger_age, passenger_gender`

func scanBooking(row scanner) (*models.Booking, error) {
	var booking models.Booking
	var name sql.NullString
	var age sql.NullInt64
	var gender sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.BusID,
		&booking.SeatNumber,
		&booking.TravelDate,
		&booking.BookingDate,
		&booking.Status,
		&name,
		&age,
		&gender,
	)
	if err != nil {
		return nil, err
	}

	if name.Valid || age.Valid || gender.Valid {
		booking.Passenger = &models.Passenger{
			Name:   name.String,
			Age:    int(age.Int64),
			Gender: gender.String,
		}
	}

	return &booking, nil
}

// Create appends a confirmed booking to the ledger
func (r *BookingRepository) Create(booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingStatusConfirmed
	}

	var name sql.NullString
	var age sql.NullInt64
	var gender sql.NullString
	if booking.Passenger != nil {
		name = sql.NullString{String: booking.Passenger.Name, Valid: true}
		age = sql.NullInt64{Int64: int64(booking.Passenger.Age), Valid: true}
		gender = sql.NullString{String: booking.Passenger.Gender, Valid: true}
	}

	query := `
		INSERT INTO bookings (id, user_id, bus_id, seat_number, travel_date,
			status, passenger_name, passenger_age, passenger_gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING booking_date`

	err := r.db.QueryRow(query,
		booking.ID,
		booking.UserID,
		booking.BusID,
		booking.SeatNumber,
		booking.TravelDate,
		booking.Status,
		name,
		age,
		gender,
	).Scan(&booking.BookingDate)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by its ID
func (r *BookingRepository) GetByID(id string) (*models.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrBookingNotFound
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

// GetByUserID retrieves all bookings for a user, newest first
func (r *BookingRepository) GetByUserID(userID string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id = $1 ORDER BY booking_date DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatus changes the status of a booking. The write is conditional on
// the status actually changing, so two cancels racing past the service-level
// check cannot both report success.
func (r *BookingRepository) UpdateStatus(id string, status models.BookingStatus) error {
	result, err := r.db.Exec(`UPDATE bookings SET status = $1 WHERE id = $2 AND status <> $1`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		// No row changed: either the booking does not exist or it already
		// carries the requested status.
		var current models.BookingStatus
		err := r.db.QueryRow(`SELECT status FROM bookings WHERE id = $1`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check booking status: %w", err)
		}
		return models.ErrAlreadyCancelled
	}

	return nil
}
