package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyline-air/booking/internal/domain"
)

type CrewRepository interface {
	Create(ctx context.Context, assignment *domain.CrewAssignment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.CrewAssignment, error)
	Update(ctx context.Context, assignment *domain.CrewAssignment) error
	Delete(ctx context.Context, id int64) error
	ListByFlight(ctx context.Context, flightID int64) ([]domain.CrewAssignment, error)
	ListAll(ctx context.Context) ([]domain.CrewAssignment, error)
}

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

func (r *PGCrewRepository) Create(ctx context.Context, a *domain.CrewAssignment) (int64, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO crew (flight_id, crew_name, role, contact_info)
		VALUES ($1, $2, $3, $4)
		RETURNING crew_id`,
		a.FlightID, a.Name, a.Role, a.ContactInfo).
		Scan(&a.ID)
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.CrewAssignment, error) {
	row := r.db.QueryRow(ctx, `SELECT c.crew_id, c.flight_id, c.crew_name, c.role, c.contact_info, f.flight_number
		FROM crew c
		JOIN flights f ON c.flight_id = f.flight_id
		WHERE c.crew_id=$1`, id)
	var a domain.CrewAssignment
	if err := row.Scan(&a.ID, &a.FlightID, &a.Name, &a.Role, &a.ContactInfo, &a.FlightNumber); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGCrewRepository) Update(ctx context.Context, a *domain.CrewAssignment) error {
	cmd, err := r.db.Exec(ctx, `UPDATE crew SET flight_id=$1, crew_name=$2, role=$3, contact_info=$4 WHERE crew_id=$5`,
		a.FlightID, a.Name, a.Role, a.ContactInfo, a.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM crew WHERE crew_id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGCrewRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.CrewAssignment, error) {
	return r.list(ctx, `SELECT c.crew_id, c.flight_id, c.crew_name, c.role, c.contact_info, f.flight_number
		FROM crew c
		JOIN flights f ON c.flight_id = f.flight_id
		WHERE c.flight_id=$1`, flightID)
}

func (r *PGCrewRepository) ListAll(ctx context.Context) ([]domain.CrewAssignment, error) {
	return r.list(ctx, `SELECT c.crew_id, c.flight_id, c.crew_name, c.role, c.contact_info, f.flight_number
		FROM crew c
		JOIN flights f ON c.flight_id = f.flight_id
		ORDER BY f.departure_time`)
}

func (r *PGCrewRepository) list(ctx context.Context, query string, args ...any) ([]domain.CrewAssignment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crew := make([]domain.CrewAssignment, 0)
	for rows.Next() {
		var a domain.CrewAssignment
		if err := rows.Scan(&a.ID, &a.FlightID, &a.Name, &a.Role, &a.ContactInfo, &a.FlightNumber); err != nil {
			return nil, err
		}
		crew = append(crew, a)
	}
	return crew, rows.Err()
}

var _ CrewRepository = (*PGCrewRepository)(nil)
