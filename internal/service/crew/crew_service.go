package crew

import (
	"context"

	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/repository"
)

type CrewUseCase interface {
	Assign(ctx context.Context, input AssignInput) (int64, error)
	Update(ctx context.Context, id int64, input AssignInput) error
	Remove(ctx context.Context, id int64) error
	ListByFlight(ctx context.Context, flightID int64) ([]domain.CrewAssignment, error)
	ListAll(ctx context.Context) ([]domain.CrewAssignment, error)
}

type AssignInput struct {
	FlightID    int64  `json:"flight_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	ContactInfo string `json:"contact_info"`
}

type CrewService struct {
	crew    repository.CrewRepository
	flights repository.FlightRepository
}

func NewCrewService(crew repository.CrewRepository, flights repository.FlightRepository) *CrewService {
	return &CrewService{crew: crew, flights: flights}
}

func (s *CrewService) Assign(ctx context.Context, input AssignInput) (int64, error) {
	if err := s.validate(ctx, input); err != nil {
		return 0, err
	}
	assignment := &domain.CrewAssignment{
		FlightID:    input.FlightID,
		Name:        input.Name,
		Role:        domain.CrewRole(input.Role),
		ContactInfo: input.ContactInfo,
	}
	return s.crew.Create(ctx, assignment)
}

func (s *CrewService) Update(ctx context.Context, id int64, input AssignInput) error {
	if err := s.validate(ctx, input); err != nil {
		return err
	}
	if _, err := s.crew.GetByID(ctx, id); err != nil {
		return err
	}
	return s.crew.Update(ctx, &domain.CrewAssignment{
		ID:          id,
		FlightID:    input.FlightID,
		Name:        input.Name,
		Role:        domain.CrewRole(input.Role),
		ContactInfo: input.ContactInfo,
	})
}

func (s *CrewService) Remove(ctx context.Context, id int64) error {
	return s.crew.Delete(ctx, id)
}

func (s *CrewService) ListByFlight(ctx context.Context, flightID int64) ([]domain.CrewAssignment, error) {
	return s.crew.ListByFlight(ctx, flightID)
}

func (s *CrewService) ListAll(ctx context.Context) ([]domain.CrewAssignment, error) {
	return s.crew.ListAll(ctx)
}

func (s *CrewService) validate(ctx context.Context, input AssignInput) error {
	if input.Name == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if !domain.CrewRole(input.Role).Valid() {
		return domain.NewValidationError("role", "unknown crew role")
	}
	// The assignment must reference an existing flight.
	if _, err := s.flights.GetByID(ctx, input.FlightID); err != nil {
		return err
	}
	return nil
}

var _ CrewUseCase = (*CrewService)(nil)
