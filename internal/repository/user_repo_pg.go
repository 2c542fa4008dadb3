package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skyline-air/booking/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameAndRole(ctx context.Context, username string, role domain.Role) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, password_hash, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, created_at`,
		user.Username, user.PasswordHash, user.Email, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return 0, domain.ErrUsernameTaken
		}
		return 0, err
	}
	return user.ID, nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, username, password_hash, email, role, created_at FROM users WHERE user_id=$1`, id)
	return scanUser(row)
}

func (r *PGUserRepository) GetByUsernameAndRole(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, username, password_hash, email, role, created_at FROM users WHERE username=$1 AND role=$2`, username, role)
	return scanUser(row)
}

func (r *PGUserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password_hash=$1 WHERE user_id=$2`, hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ UserRepository = (*PGUserRepository)(nil)
