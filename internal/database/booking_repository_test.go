package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/geeked101/bus-book/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingRows = []string{
	"id", "user_id", "bus_id", "seat_number", "travel_date",
	"booking_date", "status", "passenger_name", "passenger_age", "passenger_gender",
}

func TestCreateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success With Passenger", func(t *testing.T) {
		now := time.Now()
		booking := &models.Booking{
			UserID:     uuid.New().String(),
			BusID:      uuid.New().String(),
			SeatNumber: "12",
			TravelDate: "2026-09-15",
			Passenger:  &models.Passenger{Name: "Jane Doe", Age: 28, Gender: "female"},
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), booking.UserID, booking.BusID, "12", "2026-09-15",
				models.BookingStatusConfirmed,
				sql.NullString{String: "Jane Doe", Valid: true},
				sql.NullInt64{Int64: 28, Valid: true},
				sql.NullString{String: "female", Valid: true}).
			WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(now))

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.WithinDuration(t, now, booking.BookingDate, time.Second)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success Without Passenger", func(t *testing.T) {
		now := time.Now()
		booking := &models.Booking{
			UserID:     uuid.New().String(),
			BusID:      uuid.New().String(),
			SeatNumber: "1",
			TravelDate: "2026-09-15",
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(sqlmock.AnyArg(), booking.UserID, booking.BusID, "1", "2026-09-15",
				models.BookingStatusConfirmed,
				sql.NullString{}, sql.NullInt64{}, sql.NullString{}).
			WillReturnRows(sqlmock.NewRows([]string{"booking_date"}).AddRow(now))

		err := repo.Create(booking)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		booking := &models.Booking{
			UserID:     uuid.New().String(),
			BusID:      uuid.New().String(),
			SeatNumber: "1",
			TravelDate: "2026-09-15",
		}

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(booking)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		bookingID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows(bookingRows).AddRow(
				bookingID, uuid.New().String(), uuid.New().String(), "12", "2026-09-15",
				now, "Confirmed", "Jane Doe", 28, "female",
			))

		booking, err := repo.GetByID(bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)
		require.NotNil(t, booking.Passenger)
		assert.Equal(t, "Jane Doe", booking.Passenger.Name)
		assert.Equal(t, 28, booking.Passenger.Age)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Null Passenger", func(t *testing.T) {
		bookingID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows(bookingRows).AddRow(
				bookingID, uuid.New().String(), uuid.New().String(), "12", "2026-09-15",
				now, "Confirmed", nil, nil, nil,
			))

		booking, err := repo.GetByID(bookingID)
		require.NoError(t, err)
		assert.Nil(t, booking.Passenger)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		bookingID := uuid.New().String()

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(bookingID).
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID(bookingID)
		assert.ErrorIs(t, err, models.ErrBookingNotFound)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed ID", func(t *testing.T) {
		booking, err := repo.GetByID("not-a-uuid")
		assert.ErrorIs(t, err, models.ErrBookingNotFound)
		assert.Nil(t, booking)
	})
}

func TestGetBookingsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(bookingRows).
				AddRow(uuid.New().String(), userID, uuid.New().String(), "12", "2026-09-15",
					now, "Confirmed", nil, nil, nil).
				AddRow(uuid.New().String(), userID, uuid.New().String(), "3", "2026-09-10",
					now.Add(-time.Hour), "Cancelled", nil, nil, nil))

		bookings, err := repo.GetByUserID(userID)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, models.BookingStatusConfirmed, bookings[0].Status)
		assert.Equal(t, models.BookingStatusCancelled, bookings[1].Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Bookings", func(t *testing.T) {
		userID := uuid.New().String()

		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(bookingRows))

		bookings, err := repo.GetByUserID(userID)
		require.NoError(t, err)
		assert.Empty(t, bookings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewBookingRepository(mockDB)

	t.Run("Success", func(t *testing.T) {
		bookingID := uuid.New().String()

		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(models.BookingStatusCancelled, bookingID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(bookingID, models.BookingStatusCancelled)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		bookingID := uuid.New().String()

		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(models.BookingStatusCancelled, bookingID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT status FROM bookings`).
			WithArgs(bookingID).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateStatus(bookingID, models.BookingStatusCancelled)
		assert.ErrorIs(t, err, models.ErrBookingNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Cancelled", func(t *testing.T) {
		bookingID := uuid.New().String()

		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(models.BookingStatusCancelled, bookingID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT status FROM bookings`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("Cancelled"))

		err := repo.UpdateStatus(bookingID, models.BookingStatusCancelled)
		assert.ErrorIs(t, err, models.ErrAlreadyCancelled)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
