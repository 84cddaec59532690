// Package services содержит бизнес-логику управления автопарком.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// CarRepository определяет методы для работы с автомобилями в хранилище.
type CarRepository interface {
	CreateCar(ctx context.Context, car models.Car) (uuid.UUID, error)
	ReadCar(ctx context.Context, id uuid.UUID) (*models.Car, error)
	ListCars(ctx context.Context, filter models.ListFilter) ([]*models.Car, error)
	UpdateCar(ctx context.Context, id uuid.UUID, car models.Car) (int, error)
	UpdateCarStatus(ctx context.Context, id uuid.UUID, status models.CarStatus) (int, error)
	RemoveCar(ctx context.Context, id uuid.UUID) (int, error)
	// SweepExpiredRentals завершает активные прокаты с прошедшей датой
	// возврата, чтобы статусы автомобилей в списке были актуальны.
	SweepExpiredRentals(ctx context.Context, now time.Time) (int, error)
}

// CarService реализует бизнес-логику автомобилей.
type CarService struct {
	repo  CarRepository
	clock timezone.Clock
	log   *slog.Logger
}

// NewCarService создает новый экземпляр CarService.
func NewCarService(repo CarRepository, clock timezone.Clock, log *slog.Logger) *CarService {
	return &CarService{repo: repo, clock: clock, log: log}
}

// Create добавляет автомобиль в автопарк, статус всегда available.
func (s *CarService) Create(ctx context.Context, req models.DummyCar) (uuid.UUID, error) {
	car := models.Car{
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		Status:      models.CarStatusAvailable,
	}
	id, err := s.repo.CreateCar(ctx, car)
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("created new car",
		slog.String("id", id.String()),
		slog.String("plate_number", req.PlateNumber))
	return id, nil
}

// Read возвращает автомобиль по ID.
func (s *CarService) Read(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	return s.repo.ReadCar(ctx, id)
}

// List возвращает автопарк с окнами текущих прокатов и суммарным
// временем в прокате. Перед выборкой закрываются просроченные прокаты.
func (s *CarService) List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error) {
	if _, err := s.repo.SweepExpiredRentals(ctx, s.clock.Now()); err != nil {
		s.log.Warn("failed to sweep expired rentals", slog.Any("err", err))
	}
	return s.repo.ListCars(ctx, filter)
}

// Update меняет данные автомобиля. Непустой статус в запросе трактуется
// как ручная правка оператора: на ней строится авто-освобождение
// зависших прокатов при следующей проверке доступности.
func (s *CarService) Update(ctx context.Context, id uuid.UUID, req models.DummyCar) (int, error) {
	car := models.Car{
		Model:       req.Model,
		PlateNumber: req.PlateNumber,
		Status:      models.CarStatus(req.Status),
	}
	res, err := s.repo.UpdateCar(ctx, id, car)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated car", slog.String("id", id.String()))
	return res, nil
}

// UpdateStatus выставляет статус автомобиля вручную.
func (s *CarService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CarStatus) (int, error) {
	res, err := s.repo.UpdateCarStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated car status",
		slog.String("id", id.String()),
		slog.String("status", string(status)))
	return res, nil
}

// Remove удаляет автомобиль из автопарка.
func (s *CarService) Remove(ctx context.Context, id uuid.UUID) (int, error) {
	count, err := s.repo.RemoveCar(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("services.CarService.Remove: %w", err)
	}
	return count, nil
}
