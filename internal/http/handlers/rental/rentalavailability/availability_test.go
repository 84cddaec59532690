package rentalavailability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	rentalservice "github.com/ayoubkcm/fleet-backoffice/internal/services/rental"
)

// MockService реализует интерфейс rentalavailability.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CheckAvailability(ctx context.Context, req models.DummyAvailability) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func TestAvailabilityHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := models.DummyAvailability{
		CarID:      uuid.New().String(),
		StartDate:  "2025-07-10T10:00",
		ReturnDate: "2025-07-12T18:00",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "автомобиль свободен",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("CheckAvailability", mock.Anything, mock.AnythingOfType("models.DummyAvailability")).
					Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"available":true`,
		},
		{
			name:        "автомобиль занят",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("CheckAvailability", mock.Anything, mock.AnythingOfType("models.DummyAvailability")).
					Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"available":false`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name: "ошибка валидации",
			requestBody: models.DummyAvailability{
				CarID:     uuid.New().String(),
				StartDate: "2025-07-10T10:00",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field ReturnDate is a required field`,
		},
		{
			name:        "возврат раньше начала",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("CheckAvailability", mock.Anything, mock.AnythingOfType("models.DummyAvailability")).
					Return(false, rentalservice.ErrInvalidInterval)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"return date must be after start date"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody,
			setupMock: func(m *MockService) {
				m.On("CheckAvailability", mock.Anything, mock.AnythingOfType("models.DummyAvailability")).
					Return(false, errors.New("db error"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"could not check availability"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/rentals/availability", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
