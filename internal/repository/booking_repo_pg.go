package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyline-air/booking/internal/domain"
)

type BookingRepository interface {
	// CommitSeats inserts one confirmed booking per seat as a single
	// transaction. It returns *domain.SeatConflictError when any of the
	// seats is already confirmed on the flight; in that case nothing is
	// written.
	CommitSeats(ctx context.Context, userID, flightID int64, seats []string) ([]domain.Booking, error)
	ConfirmedSeats(ctx context.Context, flightID int64) ([]string, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error)
	ListAll(ctx context.Context) ([]domain.BookingDetails, error)
	Delete(ctx context.Context, bookingID int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CommitSeats(ctx context.Context, userID, flightID int64, seats []string) ([]domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Re-read the confirmed seats inside the transaction. This is the fast
	// path for a precise conflict report; the partial unique index remains
	// the final authority if a concurrent commit lands between this read
	// and the inserts below.
	taken, err := confirmedSeats(ctx, tx, flightID)
	if err != nil {
		return nil, err
	}
	var conflicting []string
	for _, seat := range seats {
		if _, ok := taken[seat]; ok {
			conflicting = append(conflicting, seat)
		}
	}
	if len(conflicting) > 0 {
		return nil, &domain.SeatConflictError{FlightID: flightID, Seats: conflicting}
	}

	bookings := make([]domain.Booking, 0, len(seats))
	for _, seat := range seats {
		b := domain.Booking{
			UserID:     userID,
			FlightID:   flightID,
			SeatNumber: seat,
			Status:     domain.BookingStatusConfirmed,
		}
		err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, seat_number, status)
			VALUES ($1, $2, $3, $4)
			RETURNING booking_id, booked_at`,
			b.UserID, b.FlightID, b.SeatNumber, b.Status).
			Scan(&b.ID, &b.BookedAt)
		if err != nil {
			if isUniqueViolation(err, "bookings_flight_seat_uniq") {
				return nil, &domain.SeatConflictError{FlightID: flightID, Seats: []string{seat}}
			}
			return nil, err
		}
		bookings = append(bookings, b)
	}

	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err, "bookings_flight_seat_uniq") {
			return nil, &domain.SeatConflictError{FlightID: flightID, Seats: seats}
		}
		return nil, err
	}
	return bookings, nil
}

func (r *PGBookingRepository) ConfirmedSeats(ctx context.Context, flightID int64) ([]string, error) {
	set, err := confirmedSeats(ctx, r.db, flightID)
	if err != nil {
		return nil, err
	}
	seats := make([]string, 0, len(set))
	for seat := range set {
		seats = append(seats, seat)
	}
	return seats, nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func confirmedSeats(ctx context.Context, q querier, flightID int64) (map[string]struct{}, error) {
	rows, err := q.Query(ctx, `SELECT seat_number FROM bookings WHERE flight_id=$1 AND status='Confirmed'`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make(map[string]struct{})
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats[seat] = struct{}{}
	}
	return seats, rows.Err()
}

func (r *PGBookingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error) {
	rows, err := r.db.Query(ctx, `SELECT b.booking_id, b.user_id, b.flight_id, b.seat_number, b.status, b.booked_at,
			f.flight_number, f.departure_airport, f.arrival_airport, f.departure_time
		FROM bookings b
		JOIN flights f ON b.flight_id = f.flight_id
		WHERE b.user_id = $1
		ORDER BY b.booked_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		if err := rows.Scan(&d.ID, &d.UserID, &d.FlightID, &d.SeatNumber, &d.Status, &d.BookedAt,
			&d.FlightNumber, &d.DepartureAirport, &d.ArrivalAirport, &d.DepartureTime); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingDetails, error) {
	rows, err := r.db.Query(ctx, `SELECT b.booking_id, b.user_id, b.flight_id, b.seat_number, b.status, b.booked_at,
			u.username, f.flight_number, f.departure_airport, f.arrival_airport, f.departure_time
		FROM bookings b
		JOIN users u ON b.user_id = u.user_id
		JOIN flights f ON b.flight_id = f.flight_id
		ORDER BY b.booked_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.BookingDetails, 0)
	for rows.Next() {
		var d domain.BookingDetails
		if err := rows.Scan(&d.ID, &d.UserID, &d.FlightID, &d.SeatNumber, &d.Status, &d.BookedAt,
			&d.Username, &d.FlightNumber, &d.DepartureAirport, &d.ArrivalAirport, &d.DepartureTime); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *PGBookingRepository) Delete(ctx context.Context, bookingID int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE booking_id=$1`, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
