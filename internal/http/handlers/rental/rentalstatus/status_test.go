package rentalstatus

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	"github.com/ayoubkcm/fleet-backoffice/internal/storage/repository"
)

// MockService реализует интерфейс rentalstatus.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RentalStatus) (int, error) {
	args := m.Called(ctx, id, status)
	return args.Int(0), args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rentalID := uuid.New()

	tests := []struct {
		name           string
		id             string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "выдача автомобиля",
			id:          rentalID.String(),
			requestBody: models.DummyRentalStatus{Status: "rented"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, rentalID, models.RentalStatusRented).
					Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name:        "возврат автомобиля",
			id:          rentalID.String(),
			requestBody: models.DummyRentalStatus{Status: "returned"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, rentalID, models.RentalStatusReturned).
					Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name:           "некорректный id в url",
			id:             "abc",
			requestBody:    models.DummyRentalStatus{Status: "rented"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid rental id"}`,
		},
		{
			name:           "недопустимый статус",
			id:             rentalID.String(),
			requestBody:    models.DummyRentalStatus{Status: "lost"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Status must be one of the allowed values`,
		},
		{
			name:        "прокат уже завершён",
			id:          rentalID.String(),
			requestBody: models.DummyRentalStatus{Status: "rented"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, rentalID, models.RentalStatusRented).
					Return(0, repository.ErrRentalReturned)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"rental is already returned"}`,
		},
		{
			name:        "откат статуса назад",
			id:          rentalID.String(),
			requestBody: models.DummyRentalStatus{Status: "reserved"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, rentalID, models.RentalStatusReserved).
					Return(0, repository.ErrRentalStatusBackward)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"rental status cannot move backward"}`,
		},
		{
			name:        "прокат не найден",
			id:          rentalID.String(),
			requestBody: models.DummyRentalStatus{Status: "returned"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, rentalID, models.RentalStatusReturned).
					Return(0, repository.ErrRentalNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"rental not found"}`,
		},
		{
			name:        "ошибка сервиса",
			id:          rentalID.String(),
			requestBody: models.DummyRentalStatus{Status: "returned"},
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, rentalID, models.RentalStatusReturned).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not update rental status"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, err := json.Marshal(tt.requestBody)
			assert.NoError(t, err)

			req := httptest.NewRequest(http.MethodPatch, "/rentals/"+tt.id+"/status", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
