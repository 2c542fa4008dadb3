package crew

import (
	"context"
	"testing"

	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCrewRepository struct {
	mock.Mock
}

func (m *MockCrewRepository) Create(ctx context.Context, assignment *domain.CrewAssignment) (int64, error) {
	args := m.Called(ctx, assignment)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCrewRepository) GetByID(ctx context.Context, id int64) (*domain.CrewAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CrewAssignment), args.Error(1)
}

func (m *MockCrewRepository) Update(ctx context.Context, assignment *domain.CrewAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockCrewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCrewRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.CrewAssignment, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.CrewAssignment), args.Error(1)
}

func (m *MockCrewRepository) ListAll(ctx context.Context) ([]domain.CrewAssignment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CrewAssignment), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) (int64, error) {
	args := m.Called(ctx, flight)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) CountDependents(ctx context.Context, id int64) (int, int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockFlightRepository) ConfirmedSeatCount(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func TestCrewService_Assign_Success(t *testing.T) {
	mockCrew := &MockCrewRepository{}
	mockFlights := &MockFlightRepository{}
	service := NewCrewService(mockCrew, mockFlights)

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(3)).Return(&domain.Flight{ID: 3}, nil).Once()
	mockCrew.On("Create", ctx, mock.MatchedBy(func(a *domain.CrewAssignment) bool {
		return a.FlightID == 3 && a.Role == domain.CrewRolePilot
	})).Return(int64(9), nil).Once()

	id, err := service.Assign(ctx, AssignInput{
		FlightID: 3, Name: "Dana", Role: "Pilot", ContactInfo: "dana@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(9), id)
	mockCrew.AssertExpectations(t)
}

func TestCrewService_Assign_UnknownRole(t *testing.T) {
	service := NewCrewService(&MockCrewRepository{}, &MockFlightRepository{})

	_, err := service.Assign(context.Background(), AssignInput{
		FlightID: 3, Name: "Dana", Role: "Navigator",
	})

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCrewService_Assign_FlightNotFound(t *testing.T) {
	mockCrew := &MockCrewRepository{}
	mockFlights := &MockFlightRepository{}
	service := NewCrewService(mockCrew, mockFlights)

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	_, err := service.Assign(ctx, AssignInput{FlightID: 99, Name: "Dana", Role: "Pilot"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCrew.AssertNotCalled(t, "Create")
}

func TestCrewService_Update_Success(t *testing.T) {
	mockCrew := &MockCrewRepository{}
	mockFlights := &MockFlightRepository{}
	service := NewCrewService(mockCrew, mockFlights)

	ctx := context.Background()
	mockFlights.On("GetByID", ctx, int64(3)).Return(&domain.Flight{ID: 3}, nil).Once()
	mockCrew.On("GetByID", ctx, int64(9)).Return(&domain.CrewAssignment{ID: 9}, nil).Once()
	mockCrew.On("Update", ctx, mock.MatchedBy(func(a *domain.CrewAssignment) bool {
		return a.ID == 9 && a.Role == domain.CrewRoleHostess
	})).Return(nil).Once()

	err := service.Update(ctx, 9, AssignInput{FlightID: 3, Name: "Dana", Role: "Hostess"})

	assert.NoError(t, err)
	mockCrew.AssertExpectations(t)
}

func TestCrewService_Remove_NotFound(t *testing.T) {
	mockCrew := &MockCrewRepository{}
	service := NewCrewService(mockCrew, &MockFlightRepository{})

	ctx := context.Background()
	mockCrew.On("Delete", ctx, int64(42)).Return(domain.ErrNotFound).Once()

	assert.ErrorIs(t, service.Remove(ctx, 42), domain.ErrNotFound)
}

func TestCrewService_ListByFlight(t *testing.T) {
	mockCrew := &MockCrewRepository{}
	service := NewCrewService(mockCrew, &MockFlightRepository{})

	ctx := context.Background()
	assignments := []domain.CrewAssignment{{ID: 1, FlightID: 3, Name: "Dana", Role: domain.CrewRolePilot}}
	mockCrew.On("ListByFlight", ctx, int64(3)).Return(assignments, nil).Once()

	got, err := service.ListByFlight(ctx, 3)

	assert.NoError(t, err)
	assert.Equal(t, assignments, got)
}
