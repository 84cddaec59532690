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

type RepoMock struct{ mock.Mock }

func (m *RepoMock) FindActiveRentals(ctx context.Context) ([]*models.RentalInfo, error) {
	args := m.Called(ctx)
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

func rentalAt(status models.RentalStatus, start, ret time.Time) *models.RentalInfo {
	return &models.RentalInfo{
		Rental: models.Rental{
			ID:         uuid.New(),
			StartDate:  start,
			ReturnDate: ret,
			Status:     status,
		},
		CarModel:    "Dacia Logan",
		PlateNumber: "12345-A-6",
		ClientName:  "Hassan El Amrani",
	}
}

func TestNotificationService_Build(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)

	// 1 июля 2025, полдень по Касабланке (UTC+1 летом) = 11:00 UTC.
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)

	startToday := now.Add(4 * time.Hour)
	startTomorrow := now.Add(24 * time.Hour)
	startNextWeek := now.Add(7 * 24 * time.Hour)
	returnedEarlier := now.Add(-2 * time.Hour)

	tests := []struct {
		name    string
		rentals []*models.RentalInfo
		want    []models.NotificationType
	}{
		{
			name: "reserved starting today",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusReserved, startToday, startToday.AddDate(0, 0, 3)),
			},
			want: []models.NotificationType{models.NotificationStartToday},
		},
		{
			name: "reserved starting tomorrow",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusReserved, startTomorrow, startTomorrow.AddDate(0, 0, 3)),
			},
			want: []models.NotificationType{models.NotificationStartTomorrow},
		},
		{
			name: "reserved starting next week is silent",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusReserved, startNextWeek, startNextWeek.AddDate(0, 0, 3)),
			},
			want: nil,
		},
		{
			name: "rented returning today",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusRented, now.AddDate(0, 0, -3), now.Add(5*time.Hour)),
			},
			want: []models.NotificationType{models.NotificationReturnToday},
		},
		{
			name: "overdue earlier today co-occurs with return_today",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusRented, now.AddDate(0, 0, -3), returnedEarlier),
			},
			want: []models.NotificationType{
				models.NotificationReturnToday,
				models.NotificationOverdue,
			},
		},
		{
			name: "overdue since yesterday",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusRented, now.AddDate(0, 0, -5), now.AddDate(0, 0, -1)),
			},
			want: []models.NotificationType{models.NotificationOverdue},
		},
		{
			name: "rented start date today does not trigger start_today",
			rentals: []*models.RentalInfo{
				rentalAt(models.RentalStatusRented, startToday, startToday.AddDate(0, 0, 3)),
			},
			want: nil,
		},
		{
			name:    "no active rentals",
			rentals: []*models.RentalInfo{},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("FindActiveRentals", mock.Anything).Return(tt.rentals, nil).Once()

			svc := NewNotificationService(repo, tz, fixedClock{t: now}, newNoopLogger())

			got, err := svc.Build(context.Background())
			assert.NoError(t, err)

			var gotTypes []models.NotificationType
			for _, n := range got {
				gotTypes = append(gotTypes, n.Type)
				assert.NotEmpty(t, n.Rental.StartDateLocal)
				assert.NotEmpty(t, n.Severity)
			}
			assert.Equal(t, tt.want, gotTypes)

			repo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_Build_Severities(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)

	rentals := []*models.RentalInfo{
		rentalAt(models.RentalStatusReserved, now.Add(2*time.Hour), now.AddDate(0, 0, 2)),
		rentalAt(models.RentalStatusReserved, now.Add(26*time.Hour), now.AddDate(0, 0, 4)),
		rentalAt(models.RentalStatusRented, now.AddDate(0, 0, -4), now.AddDate(0, 0, -1)),
	}

	repo := new(RepoMock)
	repo.On("FindActiveRentals", mock.Anything).Return(rentals, nil).Once()

	svc := NewNotificationService(repo, tz, fixedClock{t: now}, newNoopLogger())

	got, err := svc.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	severityByType := map[models.NotificationType]models.Severity{}
	for _, n := range got {
		severityByType[n.Type] = n.Severity
	}
	assert.Equal(t, models.SeverityWarning, severityByType[models.NotificationStartToday])
	assert.Equal(t, models.SeverityInfo, severityByType[models.NotificationStartTomorrow])
	assert.Equal(t, models.SeverityDanger, severityByType[models.NotificationOverdue])
}

// Путь уведомлений читает прокаты как есть: давно просроченный прокат
// остаётся rented и даёт overdue, а не закрывается при показе.
func TestNotificationService_Build_OverdueStaysVisible(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)

	overdue := rentalAt(models.RentalStatusRented, now.AddDate(0, 0, -10), now.AddDate(0, 0, -3))

	repo := new(RepoMock)
	repo.On("FindActiveRentals", mock.Anything).
		Return([]*models.RentalInfo{overdue}, nil).Twice()

	svc := NewNotificationService(repo, tz, fixedClock{t: now}, newNoopLogger())

	for range 2 {
		got, err := svc.Build(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, models.NotificationOverdue, got[0].Type)
		assert.Equal(t, models.RentalStatusRented, got[0].Rental.Status)
	}
	repo.AssertExpectations(t)
}

func TestNotificationService_Build_Errors(t *testing.T) {
	tz, err := timezone.New("Africa/Casablanca")
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC)

	t.Run("repo error is returned", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindActiveRentals", mock.Anything).Return(nil, errors.New("db error")).Once()

		svc := NewNotificationService(repo, tz, fixedClock{t: now}, newNoopLogger())

		got, err := svc.Build(context.Background())
		assert.Error(t, err)
		assert.Nil(t, got)
		repo.AssertExpectations(t)
	})
}
