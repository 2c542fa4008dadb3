package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/kafka"
	"github.com/skyline-air/booking/internal/repository"
	"github.com/skyline-air/booking/internal/seatmap"
)

type BookingUseCase interface {
	SeatMap(ctx context.Context, flightID int64) ([]SeatInfo, error)
	CommitBooking(ctx context.Context, input CommitBookingInput) ([]domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error)
	ListAll(ctx context.Context) ([]domain.BookingDetails, error)
	Delete(ctx context.Context, bookingID int64) error
}

type Cache interface {
	AcquireSeatHold(ctx context.Context, flightID int64, seat string, ttl time.Duration) (bool, error)
	ReleaseSeatHold(ctx context.Context, flightID int64, seat string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// SeatInfo is one cabin seat with its current availability, for rendering a
// seat map.
type SeatInfo struct {
	Label  string        `json:"label"`
	Class  seatmap.Class `json:"class"`
	Booked bool          `json:"booked"`
}

// CommitBookingInput carries one whole booking attempt: the requested seat
// count and the candidate seats a session accumulated.
type CommitBookingInput struct {
	UserID         int64    `json:"-"`
	FlightID       int64    `json:"flight_id"`
	RequestedSeats int      `json:"requested_seats"`
	Seats          []string `json:"seats"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	users              repository.UserRepository
	cache              Cache
	producer           Producer
	notificationsTopic string
	holdTTL            time.Duration
}

type BookingServiceOption func(*BookingService)

func WithSeatHolds(cache Cache, ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
		s.holdTTL = ttl
	}
}

func WithNotifications(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	users repository.UserRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		users:    users,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) SeatMap(ctx context.Context, flightID int64) ([]SeatInfo, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	taken, err := s.confirmedSet(ctx, flightID)
	if err != nil {
		return nil, err
	}

	var seats []SeatInfo
	for _, section := range seatmap.Sections() {
		for _, label := range section.Seats() {
			_, booked := taken[label]
			seats = append(seats, SeatInfo{Label: label, Class: section.Class, Booked: booked})
		}
	}
	return seats, nil
}

// CommitBooking replays the attempt through the selection state machine and
// then writes all seats in one transaction. The in-transaction re-read gives
// the fast conflict report; the store's uniqueness constraint is the final
// authority, and a constraint hit surfaces through the same
// SeatConflictError path with nothing written.
func (s *BookingService) CommitBooking(ctx context.Context, input CommitBookingInput) ([]domain.Booking, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	selection, err := NewSelection(flight.ID, input.RequestedSeats)
	if err != nil {
		return nil, err
	}
	taken, err := s.confirmedSet(ctx, flight.ID)
	if err != nil {
		return nil, err
	}
	for _, seat := range input.Seats {
		if err := selection.Toggle(seat, taken); err != nil {
			return nil, err
		}
	}
	if err := selection.Confirm(); err != nil {
		return nil, err
	}
	seats := selection.Seats()

	held, err := s.acquireHolds(ctx, flight.ID, seats)
	if err != nil {
		return nil, err
	}
	defer s.releaseHolds(ctx, flight.ID, held)

	bookings, err := s.bookings.CommitSeats(ctx, input.UserID, flight.ID, seats)
	if err != nil {
		return nil, err
	}
	selection.Clear()

	s.publish(ctx, kafka.EventBookingCommitted, input.UserID, flight.ID, seats)
	return bookings, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error) {
	return s.bookings.ListForUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.BookingDetails, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) Delete(ctx context.Context, bookingID int64) error {
	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		return err
	}
	s.publish(ctx, kafka.EventBookingDeleted, 0, 0, nil)
	return nil
}

func (s *BookingService) confirmedSet(ctx context.Context, flightID int64) (map[string]struct{}, error) {
	confirmed, err := s.bookings.ConfirmedSeats(ctx, flightID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(confirmed))
	for _, seat := range confirmed {
		taken[seat] = struct{}{}
	}
	return taken, nil
}

// acquireHolds takes short redis holds on every seat of the attempt. A seat
// another session currently holds reports as a conflict before the store is
// touched. Hold failures other than contention are ignored: the holds are an
// optimization, not the guard.
func (s *BookingService) acquireHolds(ctx context.Context, flightID int64, seats []string) ([]string, error) {
	if s.cache == nil {
		return nil, nil
	}
	var held []string
	for _, seat := range seats {
		ok, err := s.cache.AcquireSeatHold(ctx, flightID, seat, s.holdTTL)
		if err != nil {
			log.Printf("seat hold error for flight %d seat %s: %v", flightID, seat, err)
			continue
		}
		if !ok {
			s.releaseHolds(ctx, flightID, held)
			return nil, &domain.SeatConflictError{FlightID: flightID, Seats: []string{seat}}
		}
		held = append(held, seat)
	}
	return held, nil
}

func (s *BookingService) releaseHolds(ctx context.Context, flightID int64, seats []string) {
	if s.cache == nil {
		return
	}
	for _, seat := range seats {
		_ = s.cache.ReleaseSeatHold(ctx, flightID, seat)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, userID, flightID int64, seats []string) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Reference:  uuid.NewString(),
		UserID:     userID,
		FlightID:   flightID,
		Seats:      seats,
		OccurredAt: time.Now(),
	}
	if userID != 0 && s.users != nil {
		if user, err := s.users.GetByID(ctx, userID); err == nil {
			event.Email = user.Email
		} else if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("lookup user %d for notification: %v", userID, err)
		}
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, event.Reference, event); err != nil {
		log.Printf("publish %s event: %v", eventType, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
