// Package services периодически ищет просроченные возвраты и публикует
// их в очередь алертов.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	"github.com/ayoubkcm/fleet-backoffice/internal/rabbitmq"
)

// RentalRepository определяет методы чтения прокатов для планировщика.
type RentalRepository interface {
	// FindOverdueRentals возвращает выданные автомобили с прошедшей датой возврата.
	FindOverdueRentals(ctx context.Context, now time.Time) ([]*models.RentalInfo, error)
}

// SchedulerService по расписанию публикует просроченные возвраты в RabbitMQ.
type SchedulerService struct {
	repo     RentalRepository
	tz       *timezone.Timezone
	clock    timezone.Clock
	interval time.Duration
	log      *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo RentalRepository, tz *timezone.Timezone,
	clock timezone.Clock, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:     repo,
		tz:       tz,
		clock:    clock,
		interval: interval,
		log:      log,
	}
}

// PublishOverdueRentals запускает цикл: немедленный проход и затем
// по тикеру, пока не отменён контекст.
func (s *SchedulerService) PublishOverdueRentals(ctx context.Context, channel *amqp.Channel) {
	s.runPublishOverdueRentals(ctx, channel)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPublishOverdueRentals(ctx, channel)
		}
	}
}

func (s *SchedulerService) runPublishOverdueRentals(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting overdue rentals scan")
	rentals, err := s.repo.FindOverdueRentals(ctx, s.clock.Now())
	if err != nil {
		s.log.Error("failed to find overdue rentals", sl.Err(err))
		return
	}
	if len(rentals) == 0 {
		s.log.Info("no overdue rentals found")
		return
	}
	s.log.Info("found overdue rentals", "count", len(rentals))
	for _, info := range rentals {
		info.StartDateLocal = s.tz.ToInputString(info.StartDate)
		info.ReturnDateLocal = s.tz.ToInputString(info.ReturnDate)
		err = rabbitmq.PublishMessage(channel, rabbitmq.AlertsExchange, "overdue", info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
