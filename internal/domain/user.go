package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RolePassenger Role = "passenger"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePassenger
}

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Role         Role
	CreatedAt    time.Time
}
