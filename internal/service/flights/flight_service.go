package flights

import (
	"context"
	"time"

	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/repository"
)

type FlightUseCase interface {
	Create(ctx context.Context, input CreateFlightInput) (int64, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) error
	Delete(ctx context.Context, id int64) error
	AvailableSeats(ctx context.Context, id int64) (int, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	FlightNumber     string    `json:"flight_number"`
	DepartureAirport string    `json:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Capacity         int       `json:"capacity"`
}

// UpdateFlightInput replaces every mutable field of a flight. Partial
// patches are not supported.
type UpdateFlightInput struct {
	CreateFlightInput
	Status string `json:"status"`
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (int64, error) {
	if err := validateFlightFields(input); err != nil {
		return 0, err
	}

	flight := &domain.Flight{
		FlightNumber:     input.FlightNumber,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureTime:    input.DepartureTime,
		ArrivalTime:      input.ArrivalTime,
		Capacity:         input.Capacity,
		Status:           domain.FlightStatusScheduled,
	}
	id, err := s.repo.Create(ctx, flight)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx, repository.FlightFilter{})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

// Search bypasses the cache: filtered results are request specific.
func (s *FlightService) Search(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	return s.repo.List(ctx, filter)
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) error {
	if err := validateFlightFields(input.CreateFlightInput); err != nil {
		return err
	}
	status := domain.FlightStatus(input.Status)
	if !status.Valid() {
		return domain.NewValidationError("status", "must be Scheduled, Delayed or Cancelled")
	}

	// Lowering capacity below the booked count is accepted; AvailableSeats
	// simply reports a negative number until bookings are cleaned up.
	flight := &domain.Flight{
		ID:               id,
		FlightNumber:     input.FlightNumber,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureTime:    input.DepartureTime,
		ArrivalTime:      input.ArrivalTime,
		Capacity:         input.Capacity,
		Status:           status,
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete refuses to remove a flight that still has bookings or crew
// assignments, so listings never expose dangling references.
func (s *FlightService) Delete(ctx context.Context, id int64) error {
	bookings, crew, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if bookings > 0 || crew > 0 {
		return domain.ErrFlightHasDependents
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) AvailableSeats(ctx context.Context, id int64) (int, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	booked, err := s.repo.ConfirmedSeatCount(ctx, id)
	if err != nil {
		return 0, err
	}
	return flight.Capacity - booked, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

func validateFlightFields(input CreateFlightInput) error {
	if input.FlightNumber == "" {
		return domain.NewValidationError("flight_number", "must not be empty")
	}
	if input.DepartureAirport == "" || input.ArrivalAirport == "" {
		return domain.NewValidationError("airport", "departure and arrival airports are required")
	}
	if input.Capacity <= 0 {
		return domain.NewValidationError("capacity", "must be positive")
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return domain.NewValidationError("arrival_time", "must be after departure time")
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
