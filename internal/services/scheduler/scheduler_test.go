package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindOverdueRentals(ctx context.Context, now time.Time) ([]*models.RentalInfo, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RentalInfo), args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runPublishOverdueRentals(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)

	overdue := &models.RentalInfo{
		Rental: models.Rental{
			ID:         uuid.New(),
			StartDate:  now.AddDate(0, 0, -5),
			ReturnDate: now.AddDate(0, 0, -1),
			Status:     models.RentalStatusRented,
		},
		CarModel:    "Dacia Logan",
		PlateNumber: "12345-A-6",
		ClientName:  "Hassan El Amrani",
	}

	tests := []struct {
		name       string
		setupMocks func(r *MockRepository)
	}{
		{
			name: "found overdue rentals",
			setupMocks: func(r *MockRepository) {
				r.On("FindOverdueRentals", mock.Anything, now).
					Return([]*models.RentalInfo{overdue}, nil).Once()
				// Publish не вызывается, канал nil
			},
		},
		{
			name: "no overdue rentals",
			setupMocks: func(r *MockRepository) {
				r.On("FindOverdueRentals", mock.Anything, now).
					Return([]*models.RentalInfo{}, nil).Once()
			},
		},
		{
			name: "repository error is only logged",
			setupMocks: func(r *MockRepository) {
				r.On("FindOverdueRentals", mock.Anything, now).
					Return(nil, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewSchedulerService(repo, tz, fixedClock{t: now}, time.Hour, newNoopLogger())

			tt.setupMocks(repo)

			service.runPublishOverdueRentals(context.Background(), nil)

			repo.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_LocalizedDatesInPayload(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)

	overdue := &models.RentalInfo{
		Rental: models.Rental{
			ID:         uuid.New(),
			StartDate:  now.AddDate(0, 0, -5),
			ReturnDate: now.AddDate(0, 0, -1),
			Status:     models.RentalStatusRented,
		},
	}

	repo := new(MockRepository)
	repo.On("FindOverdueRentals", mock.Anything, now).
		Return([]*models.RentalInfo{overdue}, nil).Once()

	service := NewSchedulerService(repo, tz, fixedClock{t: now}, time.Hour, newNoopLogger())
	service.runPublishOverdueRentals(context.Background(), nil)

	assert.Equal(t, tz.ToInputString(overdue.StartDate), overdue.StartDateLocal)
	assert.Equal(t, tz.ToInputString(overdue.ReturnDate), overdue.ReturnDateLocal)
	repo.AssertExpectations(t)
}

func TestSchedulerService_NewSchedulerService(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)
	repo := new(MockRepository)
	logger := newNoopLogger()

	service := NewSchedulerService(repo, tz, timezone.SystemClock{}, time.Hour, logger)

	assert.NotNil(t, service)
	assert.Equal(t, repo, service.repo)
	assert.Equal(t, time.Hour, service.interval)
	assert.Equal(t, logger, service.log)
}
