package database

import (
	"fmt"
)

// schemaStatements are applied in order at startup. Every statement is
// idempotent so repeated boots against the same database are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS buses (
		id UUID PRIMARY KEY,
		bus_number VARCHAR(100) NOT NULL,
		bus_type VARCHAR(50) NOT NULL,
		total_seats INTEGER NOT NULL CHECK (total_seats > 0),
		route_from VARCHAR(100) NOT NULL,
		route_to VARCHAR(100) NOT NULL,
		departure_time VARCHAR(20) NOT NULL,
		arrival_time VARCHAR(20) NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS seat_availability (
		bus_id UUID NOT NULL REFERENCES buses(id),
		travel_date VARCHAR(10) NOT NULL,
		seat_number VARCHAR(10) NOT NULL,
		seat_index INTEGER NOT NULL,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (bus_id, travel_date, seat_number)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		bus_id UUID NOT NULL REFERENCES buses(id),
		seat_number VARCHAR(10) NOT NULL,
		travel_date VARCHAR(10) NOT NULL,
		booking_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status VARCHAR(20) NOT NULL DEFAULT 'Confirmed',
		passenger_name VARCHAR(100),
		passenger_age INTEGER,
		passenger_gender VARCHAR(20)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_bus_travel ON bookings(bus_id, travel_date)`,
	`CREATE INDEX IF NOT EXISTS idx_seat_availability_lookup ON seat_availability(bus_id, travel_date)`,
}

// EnsureSchema creates all tables and indexes the application needs.
func EnsureSchema(db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
