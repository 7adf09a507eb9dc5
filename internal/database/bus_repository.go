package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/geeked101/bus-book/internal/models"
	"github.com/google/uuid"
)

// BusRepository handles catalog operations for buses
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new bus repository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

const busColumns = `id, bus_number, bus_type, total_seats, route_from, route_to, departure_time, arrival_time, price, created_at, updated_at`

func scanBus(row scanner) (*models.Bus, error) {
	var bus models.Bus
	err := row.Scan(
		&bus.ID,
		&bus.BusNumber,
		&bus.BusType,
		&bus.TotalSeats,
		&bus.Route.From,
		&bus.Route.To,
		&bus.Route.DepartureTime,
		&bus.Route.ArrivalTime,
		&bus.Route.Price,
		&bus.CreatedAt,
		&bus.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

// GetByID retrieves a bus by its ID
func (r *BusRepository) GetByID(id string) (*models.Bus, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrBusNotFound
	}

	query := `SELECT ` + busColumns + ` FROM buses WHERE id = $1`

	bus, err := scanBus(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBusNotFound
		}
		return nil, fmt.Errorf("failed to get bus: %w", err)
	}

	return bus, nil
}

// GetAll retrieves the full bus catalog ordered by route
func (r *BusRepository) GetAll() ([]models.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses ORDER BY route_from, route_to, departure_time`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list buses: %w", err)
	}
	defer rows.Close()

	buses := make([]models.Bus, 0)
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bus: %w", err)
		}
		buses = append(buses, *bus)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buses: %w", err)
	}

	return buses, nil
}

// Create inserts a bus into the catalog. Used by seeding.
func (r *BusRepository) Create(bus *models.Bus) error {
	if bus.ID == "" {
		bus.ID = uuid.New().String()
	}

	query := `
		INSERT INTO buses (id, bus_number, bus_type, total_seats,
			route_from, route_to, departure_time, arrival_time, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(query,
		bus.ID,
		bus.BusNumber,
		bus.BusType,
		bus.TotalSeats,
		bus.Route.From,
		bus.Route.To,
		bus.Route.DepartureTime,
		bus.Route.ArrivalTime,
		bus.Route.Price,
	).Scan(&bus.CreatedAt, &bus.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bus: %w", err)
	}

	return nil
}

// Count returns the number of buses in the catalog
func (r *BusRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM buses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count buses: %w", err)
	}
	return count, nil
}

// DeleteAll removes every bus from the catalog. Used by forced re-seeding.
func (r *BusRepository) DeleteAll() error {
	if _, err := r.db.Exec(`DELETE FROM buses`); err != nil {
		return fmt.Errorf("failed to clear buses: %w", err)
	}
	return nil
}
