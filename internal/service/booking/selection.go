package booking

import (
	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/seatmap"
)

const (
	MinRequestedSeats = 1
	MaxRequestedSeats = 10
)

// Selection is the in-progress candidate seat set of one booking attempt.
// It is pure state: availability of a seat against the store is checked by
// the caller (see BookingService), the selection only enforces the cabin
// layout and the requested-count bound.
type Selection struct {
	FlightID  int64
	Requested int
	seats     []string
}

func NewSelection(flightID int64, requested int) (*Selection, error) {
	if requested < MinRequestedSeats || requested > MaxRequestedSeats {
		return nil, domain.NewValidationError("requested_seats", "must be between 1 and 10")
	}
	return &Selection{FlightID: flightID, Requested: requested}, nil
}

// Toggle selects seat, or deselects it if it is already in the candidate
// set. taken holds the seats currently confirmed on the flight; a taken seat
// never enters the set. Selecting beyond the requested count returns
// ErrSelectionFull and leaves the set unchanged.
func (s *Selection) Toggle(seat string, taken map[string]struct{}) error {
	for i, chosen := range s.seats {
		if chosen == seat {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return nil
		}
	}
	if !seatmap.Contains(seat) {
		return domain.NewValidationError("seat", "no such seat in the cabin")
	}
	if _, booked := taken[seat]; booked {
		return &domain.SeatConflictError{FlightID: s.FlightID, Seats: []string{seat}}
	}
	if len(s.seats) >= s.Requested {
		return domain.ErrSelectionFull
	}
	s.seats = append(s.seats, seat)
	return nil
}

// Seats returns the candidate set in selection order.
func (s *Selection) Seats() []string {
	out := make([]string, len(s.seats))
	copy(out, s.seats)
	return out
}

// Confirm checks the transition out of the selecting state: the candidate
// set must hold exactly the requested number of seats.
func (s *Selection) Confirm() error {
	if len(s.seats) != s.Requested {
		return domain.ErrSeatCountMismatch
	}
	return nil
}

// Clear resets the candidate set after a committed attempt.
func (s *Selection) Clear() {
	s.seats = nil
}
