// Package services выводит временные уведомления по активным прокатам:
// какие брони начинаются сегодня и завтра, какие возвраты ожидаются
// сегодня и какие уже просрочены.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// RentalRepository определяет методы чтения прокатов для вывода уведомлений.
type RentalRepository interface {
	// FindActiveRentals возвращает прокаты в статусах reserved и rented.
	FindActiveRentals(ctx context.Context) ([]*models.RentalInfo, error)
}

// NotificationService классифицирует активные прокаты относительно
// текущего бизнес-дня. Чистая функция над состоянием прокатов и "сейчас".
type NotificationService struct {
	repo  RentalRepository
	tz    *timezone.Timezone
	clock timezone.Clock
	log   *slog.Logger
}

// NewNotificationService создает новый экземпляр NotificationService.
func NewNotificationService(repo RentalRepository, tz *timezone.Timezone,
	clock timezone.Clock, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:  repo,
		tz:    tz,
		clock: clock,
		log:   log,
	}
}

// Build возвращает уведомления по всем активным прокатам. Один прокат
// может дать до двух уведомлений: return_today и overdue независимы.
// Просроченные прокаты здесь не закрываются: уведомления читают состояние
// как есть, иначе overdue исчезал бы в момент показа. Принудительное
// завершение происходит на путях чтения списка прокатов и дашборда.
func (s *NotificationService) Build(ctx context.Context) ([]models.Notification, error) {
	const op = "services.NotificationService.Build"

	rentals, err := s.repo.FindActiveRentals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	notifications := make([]models.Notification, 0)
	for _, info := range rentals {
		info.StartDateLocal = s.tz.ToInputString(info.StartDate)
		info.ReturnDateLocal = s.tz.ToInputString(info.ReturnDate)
		for _, n := range s.classify(info, now) {
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

// classify применяет правила к одному прокату.
func (s *NotificationService) classify(info *models.RentalInfo, now time.Time) []models.Notification {
	var result []models.Notification

	switch info.Status {
	case models.RentalStatusReserved:
		if s.tz.IsToday(info.StartDate, now) {
			result = append(result, models.Notification{
				Type:     models.NotificationStartToday,
				Severity: models.SeverityWarning,
				Rental:   *info,
			})
		} else if s.tz.IsTomorrow(info.StartDate, now) {
			result = append(result, models.Notification{
				Type:     models.NotificationStartTomorrow,
				Severity: models.SeverityInfo,
				Rental:   *info,
			})
		}
	case models.RentalStatusRented:
		if s.tz.IsToday(info.ReturnDate, now) {
			result = append(result, models.Notification{
				Type:     models.NotificationReturnToday,
				Severity: models.SeverityWarning,
				Rental:   *info,
			})
		}
		// Просрочка проверяется отдельно и может сосуществовать с return_today.
		if info.ReturnDate.Before(now) {
			result = append(result, models.Notification{
				Type:     models.NotificationOverdue,
				Severity: models.SeverityDanger,
				Rental:   *info,
			})
		}
	}
	return result
}
