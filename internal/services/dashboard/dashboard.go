// Package services собирает сводку по автопарку для дашборда:
// агрегаты по статусам автомобилей, выручку, расходы и прибыль.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Summary сводка по автопарку за период.
type Summary struct {
	Cars     models.CarStats `json:"cars"`
	Revenue  float64         `json:"revenue"`
	Expenses float64         `json:"expenses"`
	Profit   float64         `json:"profit"`
}

// Repository определяет методы чтения агрегатов из хранилища.
type Repository interface {
	CountCarsByStatus(ctx context.Context) (*models.CarStats, error)
	SumRentalRevenue(ctx context.Context, from, to time.Time) (float64, error)
	SumExpenses(ctx context.Context, from, to time.Time) (float64, error)
	// SweepExpiredRentals завершает активные прокаты с прошедшей датой
	// возврата, чтобы агрегаты по статусам были актуальны.
	SweepExpiredRentals(ctx context.Context, now time.Time) (int, error)
}

// DashboardService считает сводку по автопарку.
type DashboardService struct {
	repo  Repository
	tz    *timezone.Timezone
	clock timezone.Clock
	log   *slog.Logger
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(repo Repository, tz *timezone.Timezone,
	clock timezone.Clock, log *slog.Logger) *DashboardService {
	return &DashboardService{repo: repo, tz: tz, clock: clock, log: log}
}

// Build возвращает сводку, опционально ограниченную месяцем бизнес-зоны.
// Нулевой year означает "за всё время".
func (s *DashboardService) Build(ctx context.Context, year int, month time.Month) (*Summary, error) {
	const op = "services.DashboardService.Build"

	if _, err := s.repo.SweepExpiredRentals(ctx, s.clock.Now()); err != nil {
		s.log.Warn("failed to sweep expired rentals", slog.Any("err", err))
	}

	var from, to time.Time
	if year != 0 {
		from, to = s.tz.MonthRange(year, month)
	}

	stats, err := s.repo.CountCarsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	revenue, err := s.repo.SumRentalRevenue(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	expenses, err := s.repo.SumExpenses(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Summary{
		Cars:     *stats,
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   revenue - expenses,
	}, nil
}
