package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhawal37/ecorides/internal/domain"
	"github.com/dhawal37/ecorides/internal/service/rides"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRideUseCase is a mock implementation of rides.RideUseCase
type MockRideUseCase struct {
	mock.Mock
}

func (m *MockRideUseCase) ListAvailable(ctx context.Context, filter domain.RideFilter) ([]domain.Ride, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Ride), args.Error(1)
}

func (m *MockRideUseCase) Offer(ctx context.Context, input rides.OfferRideInput) (*domain.Ride, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ride), args.Error(1)
}

func (m *MockRideUseCase) Cancel(ctx context.Context, rideID string) error {
	args := m.Called(ctx, rideID)
	return args.Error(0)
}

func (m *MockRideUseCase) ListOffered(ctx context.Context, userID string) ([]domain.OfferedRide, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.OfferedRide), args.Error(1)
}

func TestRideHandler_list(t *testing.T) {
	mockService := &MockRideUseCase{}
	handler := NewRideHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/rides?from=Kothrud&to=Hinjewadi", nil)

	listed := []domain.Ride{
		{ID: "ride-1", From: "Kothrud", To: "Hinjewadi", AvailableSeats: 3, PricePerSeat: 150, Status: domain.RideStatusActive},
	}

	mockService.On("ListAvailable", c.Request.Context(), domain.RideFilter{From: "Kothrud", To: "Hinjewadi"}).Return(listed, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Ride
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "ride-1", response[0].ID)

	mockService.AssertExpectations(t)
}

func TestRideHandler_offer(t *testing.T) {
	mockService := &MockRideUseCase{}
	handler := NewRideHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := rides.OfferRideInput{
		UserID:         "driver-1",
		From:           "Kothrud",
		To:             "Hinjewadi",
		Date:           "2025-03-20",
		Time:           "08:00 AM",
		AvailableSeats: 3,
		PricePerSeat:   150,
		PickupPoints:   []string{"Kothrud Depot"},
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/rides", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Ride{
		ID:             "ride-1",
		UserID:         "driver-1",
		From:           "Kothrud",
		To:             "Hinjewadi",
		AvailableSeats: 3,
		PricePerSeat:   150,
		Status:         domain.RideStatusActive,
	}

	mockService.On("Offer", c.Request.Context(), input).Return(created, nil)

	handler.offer(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Ride
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ride-1", response.ID)
	assert.Equal(t, domain.RideStatusActive, response.Status)

	mockService.AssertExpectations(t)
}

func TestRideHandler_cancel(t *testing.T) {
	mockService := &MockRideUseCase{}
	handler := NewRideHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "ride-1"}}
	c.Request = httptest.NewRequest("DELETE", "/rides/ride-1", nil)

	mockService.On("Cancel", c.Request.Context(), "ride-1").Return(nil)

	handler.cancel(c)
	// c.Status alone does not reach the recorder until the header is flushed.
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)

	mockService.AssertExpectations(t)
}

func TestRideHandler_cancel_notFound(t *testing.T) {
	mockService := &MockRideUseCase{}
	handler := NewRideHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request = httptest.NewRequest("DELETE", "/rides/missing", nil)

	mockService.On("Cancel", c.Request.Context(), "missing").Return(domain.ErrRideNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	mockService.AssertExpectations(t)
}

func TestRideHandler_listOffered(t *testing.T) {
	mockService := &MockRideUseCase{}
	handler := NewRideHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "user_id", Value: "driver-1"}}
	c.Request = httptest.NewRequest("GET", "/rides/user/driver-1", nil)

	offered := []domain.OfferedRide{
		{
			Ride:     domain.Ride{ID: "ride-1", UserID: "driver-1"},
			Bookings: []domain.Booking{{ID: "booking-1", RideID: "ride-1"}},
		},
	}

	mockService.On("ListOffered", c.Request.Context(), "driver-1").Return(offered, nil)

	handler.listOffered(c)

	assert.Equal(t, http.StatusOK, w.Code)

	mockService.AssertExpectations(t)
}
