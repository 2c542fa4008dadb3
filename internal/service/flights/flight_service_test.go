package flights

import (
	"context"
	"testing"
	"time"

	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) (int64, error) {
	args := m.Called(ctx, flight)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validInput() CreateFlightInput {
	dep := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	return CreateFlightInput{
		FlightNumber:     "SL101",
		DepartureAirport: "JFK",
		ArrivalAirport:   "LHR",
		DepartureTime:    dep,
		ArrivalTime:      dep.Add(7 * time.Hour),
		Capacity:         86,
	}
}

func TestFlightService_Create_DefaultsToScheduled(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.Status == domain.FlightStatusScheduled
	})).Return(int64(5), nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	id, err := service.Create(ctx, validInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_Validation(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*CreateFlightInput)
	}{
		{"empty flight number", func(in *CreateFlightInput) { in.FlightNumber = "" }},
		{"missing airports", func(in *CreateFlightInput) { in.DepartureAirport = "" }},
		{"zero capacity", func(in *CreateFlightInput) { in.Capacity = 0 }},
		{"negative capacity", func(in *CreateFlightInput) { in.Capacity = -3 }},
		{"arrival before departure", func(in *CreateFlightInput) { in.ArrivalTime = in.DepartureTime.Add(-time.Hour) }},
		{"arrival equals departure", func(in *CreateFlightInput) { in.ArrivalTime = in.DepartureTime }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := service.Create(ctx, input)
			var validation *domain.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	cached := []domain.Flight{{ID: 1, FlightNumber: "SL101"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockRepo.AssertNotCalled(t, "List")
}

func TestFlightService_List_CacheMissFallsThrough(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 1}, {ID: 2}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx, repository.FlightFilter{}).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(nil).Once()

	flights, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, stored, flights)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Search_PassesFilter(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	filter := repository.FlightFilter{DepartureAirport: "JFK", ArrivalAirport: "LHR", DepartureDate: &date}
	mockRepo.On("List", ctx, filter).Return([]domain.Flight{{ID: 1}}, nil).Once()

	flights, err := service.Search(ctx, filter)

	assert.NoError(t, err)
	assert.Len(t, flights, 1)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Update_RejectsBadStatus(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, nil)

	input := UpdateFlightInput{CreateFlightInput: validInput(), Status: "Boarding"}
	err := service.Update(context.Background(), 1, input)

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

// Lowering capacity below the booked count is accepted: bookings are never
// retroactively invalidated, AvailableSeats just goes negative.
func TestFlightService_Update_AllowsCapacityBelowBookedCount(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	input := UpdateFlightInput{CreateFlightInput: validInput(), Status: "Scheduled"}
	input.Capacity = 1

	mockRepo.On("Update", ctx, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.Capacity == 1
	})).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.Update(ctx, 1, input))

	mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.Flight{ID: 1, Capacity: 1}, nil).Once()
	mockRepo.On("ConfirmedSeatCount", ctx, int64(1)).Return(3, nil).Once()

	available, err := service.AvailableSeats(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, -2, available)
}

func TestFlightService_Delete_BlockedByDependents(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("CountDependents", ctx, int64(1)).Return(2, 0, nil).Once()

	err := service.Delete(ctx, 1)

	assert.ErrorIs(t, err, domain.ErrFlightHasDependents)
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestFlightService_Delete_Success(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("CountDependents", ctx, int64(1)).Return(0, 0, nil).Once()
	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, 1))
	mockRepo.AssertExpectations(t)
}

func TestFlightService_AvailableSeats(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("GetByID", ctx, int64(2)).Return(&domain.Flight{ID: 2, Capacity: 2}, nil).Once()
	mockRepo.On("ConfirmedSeatCount", ctx, int64(2)).Return(2, nil).Once()

	available, err := service.AvailableSeats(ctx, 2)

	assert.NoError(t, err)
	assert.Equal(t, 0, available)
}
