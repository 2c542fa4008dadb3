package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports an absent user, flight, booking or crew row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for every failed login, whether the
	// username, the password or the role did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken reports a duplicate username at registration.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrFlightHasDependents blocks deletion of a flight that still has
	// bookings or crew assignments referencing it.
	ErrFlightHasDependents = errors.New("flight has bookings or crew assigned")

	// ErrSelectionFull rejects selecting one more seat than requested.
	// It is a user-visible warning, not a failure of the selection.
	ErrSelectionFull = errors.New("requested seat count already selected")

	// ErrSeatCountMismatch rejects confirming a selection whose size does
	// not equal the requested seat count.
	ErrSeatCountMismatch = errors.New("selected seats do not match requested count")
)

// ValidationError reports malformed or missing input. No state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// SeatConflictError reports the seats of a booking attempt that are already
// held by confirmed bookings on the flight. It is returned both by the
// pre-commit check and when the store's uniqueness constraint fires.
type SeatConflictError struct {
	FlightID int64
	Seats    []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat(s) %s already booked on flight %d", strings.Join(e.Seats, ", "), e.FlightID)
}
