package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skyline-air/booking/internal/domain"
	"github.com/skyline-air/booking/internal/service/crew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCrewUseCase is a mock implementation of crew.CrewUseCase
type MockCrewUseCase struct {
	mock.Mock
}

func (m *MockCrewUseCase) Assign(ctx context.Context, input crew.AssignInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCrewUseCase) Update(ctx context.Context, id int64, input crew.AssignInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockCrewUseCase) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCrewUseCase) ListByFlight(ctx context.Context, flightID int64) ([]domain.CrewAssignment, error) {
	args := m.Called(ctx, flightID)
	return args.Get(0).([]domain.CrewAssignment), args.Error(1)
}

func (m *MockCrewUseCase) ListAll(ctx context.Context) ([]domain.CrewAssignment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CrewAssignment), args.Error(1)
}

func adminRequest(c *gin.Context, method, target string, body []byte) {
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set(headerUserID, "1")
	c.Request.Header.Set(headerUserRole, "admin")
}

func TestCrewHandler_assign(t *testing.T) {
	mockService := &MockCrewUseCase{}
	handler := NewCrewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(crew.AssignInput{
		FlightID: 3, Name: "Dana", Role: "Pilot", ContactInfo: "dana@example.com",
	})
	adminRequest(c, "POST", "/crew", body)

	mockService.On("Assign", c.Request.Context(), mock.MatchedBy(func(in crew.AssignInput) bool {
		return in.FlightID == 3 && in.Role == "Pilot"
	})).Return(int64(9), nil)

	handler.assign(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"crew_id":9`)
	mockService.AssertExpectations(t)
}

func TestCrewHandler_assign_ForbiddenForPassenger(t *testing.T) {
	mockService := &MockCrewUseCase{}
	handler := NewCrewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(crew.AssignInput{FlightID: 3, Name: "Dana", Role: "Pilot"})
	c.Request = httptest.NewRequest("POST", "/crew", bytes.NewReader(body))
	c.Request.Header.Set(headerUserID, "7")
	c.Request.Header.Set(headerUserRole, "passenger")

	handler.assign(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "Assign")
}

func TestCrewHandler_assign_UnknownRole(t *testing.T) {
	mockService := &MockCrewUseCase{}
	handler := NewCrewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(crew.AssignInput{FlightID: 3, Name: "Dana", Role: "Navigator"})
	adminRequest(c, "POST", "/crew", body)

	mockService.On("Assign", c.Request.Context(), mock.Anything).
		Return(int64(0), domain.NewValidationError("role", "unknown crew role"))

	handler.assign(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrewHandler_listByFlight(t *testing.T) {
	mockService := &MockCrewUseCase{}
	handler := NewCrewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "flightID", Value: "3"}}
	adminRequest(c, "GET", "/crew/flight/3", nil)

	mockService.On("ListByFlight", c.Request.Context(), int64(3)).Return([]domain.CrewAssignment{
		{ID: 9, FlightID: 3, Name: "Dana", Role: domain.CrewRolePilot},
	}, nil)

	handler.listByFlight(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dana")
	mockService.AssertExpectations(t)
}

func TestCrewHandler_remove_NotFound(t *testing.T) {
	mockService := &MockCrewUseCase{}
	handler := NewCrewHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	adminRequest(c, "DELETE", "/crew/42", nil)

	mockService.On("Remove", c.Request.Context(), int64(42)).Return(domain.ErrNotFound)

	handler.remove(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
