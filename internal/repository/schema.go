package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied on startup and is idempotent. The partial unique index on
// bookings is the authoritative guard against double-booking a seat: a commit
// that slips past the in-transaction availability check still fails here.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id BIGSERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL CHECK (role IN ('admin', 'passenger')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		flight_id BIGSERIAL PRIMARY KEY,
		flight_number TEXT NOT NULL,
		departure_airport TEXT NOT NULL,
		arrival_airport TEXT NOT NULL,
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time TIMESTAMPTZ NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		status TEXT NOT NULL DEFAULT 'Scheduled'
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(user_id),
		flight_id BIGINT NOT NULL REFERENCES flights(flight_id),
		seat_number TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Confirmed',
		booked_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_flight_seat_uniq
		ON bookings (flight_id, seat_number) WHERE status = 'Confirmed'`,
	`CREATE TABLE IF NOT EXISTS crew (
		crew_id BIGSERIAL PRIMARY KEY,
		flight_id BIGINT NOT NULL REFERENCES flights(flight_id),
		crew_name TEXT NOT NULL,
		role TEXT NOT NULL,
		contact_info TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS flights_departure_idx ON flights (departure_time)`,
	`CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings (user_id)`,
}

// InitSchema creates the four entity tables and their indexes if absent.
// A failure here is fatal to the caller.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
