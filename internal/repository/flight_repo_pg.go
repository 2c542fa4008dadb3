package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyline-air/booking/internal/domain"
)

// FlightFilter narrows List to a route and a departure day. Nil fields are
// ignored; the date comparison is date-only, time of day does not matter.
type FlightFilter struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    *time.Time
}

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) (int64, error)
	List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	CountDependents(ctx context.Context, id int64) (bookings, crew int, err error)
	ConfirmedSeatCount(ctx context.Context, id int64) (int, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// flightColumns selects flight fields plus the derived confirmed-booking
// count, so AvailableSeats can be computed without a second round trip.
const flightColumns = `f.flight_id, f.flight_number, f.departure_airport, f.arrival_airport,
	f.departure_time, f.arrival_time, f.capacity, f.status,
	(SELECT count(*) FROM bookings b WHERE b.flight_id = f.flight_id AND b.status = 'Confirmed') AS booked`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) (int64, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, departure_airport, arrival_airport, departure_time, arrival_time, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING flight_id`,
		flight.FlightNumber, flight.DepartureAirport, flight.ArrivalAirport,
		flight.DepartureTime, flight.ArrivalTime, flight.Capacity, flight.Status).
		Scan(&flight.ID)
	if err != nil {
		return 0, err
	}
	return flight.ID, nil
}

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights f`
	var (
		conds []string
		args  []any
	)
	if filter.DepartureAirport != "" {
		args = append(args, filter.DepartureAirport)
		conds = append(conds, `f.departure_airport = $`+strconv.Itoa(len(args)))
	}
	if filter.ArrivalAirport != "" {
		args = append(args, filter.ArrivalAirport)
		conds = append(conds, `f.arrival_airport = $`+strconv.Itoa(len(args)))
	}
	if filter.DepartureDate != nil {
		args = append(args, *filter.DepartureDate)
		conds = append(conds, `f.departure_time::date = $`+strconv.Itoa(len(args))+`::date`)
	}
	for i, c := range conds {
		if i == 0 {
			query += ` WHERE ` + c
		} else {
			query += ` AND ` + c
		}
	}
	query += ` ORDER BY f.departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights f WHERE f.flight_id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Update overwrites every mutable field of the flight (full replace, not a
// partial patch).
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET
			flight_number=$1, departure_airport=$2, arrival_airport=$3,
			departure_time=$4, arrival_time=$5, capacity=$6, status=$7
		WHERE flight_id=$8`,
		flight.FlightNumber, flight.DepartureAirport, flight.ArrivalAirport,
		flight.DepartureTime, flight.ArrivalTime, flight.Capacity, flight.Status, flight.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE flight_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) CountDependents(ctx context.Context, id int64) (int, int, error) {
	var bookings, crew int
	err := r.db.QueryRow(ctx, `SELECT
			(SELECT count(*) FROM bookings WHERE flight_id=$1),
			(SELECT count(*) FROM crew WHERE flight_id=$1)`, id).
		Scan(&bookings, &crew)
	if err != nil {
		return 0, 0, err
	}
	return bookings, crew, nil
}

func (r *PGFlightRepository) ConfirmedSeatCount(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE flight_id=$1 AND status='Confirmed'`, id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var (
		f      domain.Flight
		booked int
	)
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.DepartureAirport, &f.ArrivalAirport,
		&f.DepartureTime, &f.ArrivalTime, &f.Capacity, &f.Status, &booked); err != nil {
		return nil, err
	}
	f.AvailableSeats = f.Capacity - booked
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
