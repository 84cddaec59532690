// Package services содержит бизнес-логику жизненного цикла прокатов:
// проверку доступности автомобилей, переходы статусов и закрытие
// просроченных прокатов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/lib/timezone"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// ErrInvalidInterval дата начала проката не раньше даты возврата.
var ErrInvalidInterval = errors.New("start date must be before return date")

// RentalRepository определяет методы для работы с прокатами в хранилище.
type RentalRepository interface {
	// CreateRental атомарно проверяет доступность, вставляет прокат
	// и обновляет статус автомобиля.
	CreateRental(ctx context.Context, rental models.Rental) (uuid.UUID, error)
	// ReadRental возвращает прокат с данными автомобиля и клиента.
	ReadRental(ctx context.Context, id uuid.UUID) (*models.RentalInfo, error)
	// ListRentals возвращает прокаты, начавшиеся в интервале [from, to),
	// с поиском и пагинацией.
	ListRentals(ctx context.Context, from, to time.Time, filter models.ListFilter) ([]*models.RentalInfo, error)
	// UpdateRentalInterval меняет автомобиль, клиента, интервал и цену проката.
	UpdateRentalInterval(ctx context.Context, id, carID, clientID uuid.UUID, start, ret time.Time, price float64) (int, error)
	// UpdateRentalStatus меняет статус проката и синхронизирует автомобиль.
	UpdateRentalStatus(ctx context.Context, id uuid.UUID, status models.RentalStatus) (int, error)
	// RemoveRental удаляет прокат, освобождая автомобиль при необходимости.
	RemoveRental(ctx context.Context, id uuid.UUID) (int, error)
	// CheckCarAvailability проверяет интервал, попутно закрывая зависшие прокаты.
	CheckCarAvailability(ctx context.Context, carID uuid.UUID, start, ret time.Time, excludeID uuid.UUID) (bool, error)
	// SweepExpiredRentals завершает активные прокаты с прошедшей датой возврата.
	SweepExpiredRentals(ctx context.Context, now time.Time) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// RentalService реализует бизнес-логику прокатов, включая кеширование.
type RentalService struct {
	repo  RentalRepository
	cache Cache
	tz    *timezone.Timezone
	clock timezone.Clock
	log   *slog.Logger
}

// NewRentalService создает новый экземпляр RentalService.
func NewRentalService(repo RentalRepository, cache Cache, tz *timezone.Timezone,
	clock timezone.Clock, log *slog.Logger) *RentalService {
	return &RentalService{
		repo:  repo,
		cache: cache,
		tz:    tz,
		clock: clock,
		log:   log,
	}
}

// parseInterval разбирает строки настенного времени бизнес-зоны
// и проверяет порядок границ интервала.
func (s *RentalService) parseInterval(startStr, returnStr string) (time.Time, time.Time, error) {
	start, err := s.tz.ToUTC(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	ret, err := s.tz.ToUTC(returnStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid return date: %w", err)
	}
	if !start.Before(ret) {
		return time.Time{}, time.Time{}, ErrInvalidInterval
	}
	return start, ret, nil
}

// localize заполняет строки настенного времени для полей ввода.
func (s *RentalService) localize(info *models.RentalInfo) {
	info.StartDateLocal = s.tz.ToInputString(info.StartDate)
	info.ReturnDateLocal = s.tz.ToInputString(info.ReturnDate)
}

// Create создает новый прокат и возвращает его ID.
func (s *RentalService) Create(ctx context.Context, req models.DummyRental) (uuid.UUID, error) {
	start, ret, err := s.parseInterval(req.StartDate, req.ReturnDate)
	if err != nil {
		return uuid.Nil, err
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid car id: %w", err)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid client id: %w", err)
	}

	status := models.RentalStatus(req.Status)
	if status == "" {
		status = models.RentalStatusReserved
	}

	rental := models.Rental{
		CarID:       carID,
		ClientID:    clientID,
		StartDate:   start,
		ReturnDate:  ret,
		RentalPrice: req.RentalPrice,
		Status:      status,
	}

	id, err := s.repo.CreateRental(ctx, rental)
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("created new rental",
		slog.String("id", id.String()),
		slog.String("car_id", carID.String()),
		slog.String("status", string(status)))
	return id, nil
}

// CheckAvailability сообщает, свободен ли автомобиль в запрошенном интервале.
func (s *RentalService) CheckAvailability(ctx context.Context, req models.DummyAvailability) (bool, error) {
	start, ret, err := s.parseInterval(req.StartDate, req.ReturnDate)
	if err != nil {
		return false, err
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return false, fmt.Errorf("invalid car id: %w", err)
	}
	excludeID := uuid.Nil
	if req.ExcludeRentalID != "" {
		excludeID, err = uuid.Parse(req.ExcludeRentalID)
		if err != nil {
			return false, fmt.Errorf("invalid exclude rental id: %w", err)
		}
	}
	return s.repo.CheckCarAvailability(ctx, carID, start, ret, excludeID)
}

// Read возвращает прокат по ID, используя кеш или репозиторий.
func (s *RentalService) Read(ctx context.Context, id uuid.UUID) (*models.RentalInfo, error) {
	var result *models.RentalInfo
	cacheKey := fmt.Sprintf("rental:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		s.localize(result)
		return result, nil
	}
	result, err = s.repo.ReadRental(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache rental", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.localize(result)
	return result, nil
}

// List возвращает прокаты, опционально отфильтрованные по месяцу бизнес-зоны.
// Перед выборкой закрываются просроченные прокаты, чтобы список
// не показывал активным то, что уже должно было вернуться.
func (s *RentalService) List(ctx context.Context, year int, month time.Month,
	filter models.ListFilter) ([]*models.RentalInfo, error) {
	if _, err := s.SweepExpired(ctx); err != nil {
		s.log.Warn("failed to sweep expired rentals", slog.Any("err", err))
	}

	var from, to time.Time
	if year != 0 {
		from, to = s.tz.MonthRange(year, month)
	}
	rentals, err := s.repo.ListRentals(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}
	for _, info := range rentals {
		s.localize(info)
	}
	return rentals, nil
}

// Update меняет автомобиль, клиента, интервал и цену проката и инвалидирует
// кеш. Пересечения проверяются против целевого автомобиля. Статусы проката
// и автомобилей при этом не трогаются.
func (s *RentalService) Update(ctx context.Context, id uuid.UUID, req models.DummyRental) (int, error) {
	start, ret, err := s.parseInterval(req.StartDate, req.ReturnDate)
	if err != nil {
		return 0, err
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return 0, fmt.Errorf("invalid car id: %w", err)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return 0, fmt.Errorf("invalid client id: %w", err)
	}

	res, err := s.repo.UpdateRentalInterval(ctx, id, carID, clientID, start, ret, req.RentalPrice)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated rental interval", slog.String("id", id.String()))

	cacheKey := fmt.Sprintf("rental:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate rental cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// UpdateStatus переводит прокат в новый статус. Завершение проката
// освобождает автомобиль, завершённый прокат менять нельзя.
func (s *RentalService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RentalStatus) (int, error) {
	res, err := s.repo.UpdateRentalStatus(ctx, id, status)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated rental status",
		slog.String("id", id.String()),
		slog.String("status", string(status)))

	cacheKey := fmt.Sprintf("rental:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate rental cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет прокат и инвалидирует кеш.
func (s *RentalService) Remove(ctx context.Context, id uuid.UUID) (int, error) {
	count, err := s.repo.RemoveRental(ctx, id)
	if err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("rental:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate rental cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return count, nil
}

// SweepExpired завершает активные прокаты, чья дата возврата уже прошла.
func (s *RentalService) SweepExpired(ctx context.Context) (int, error) {
	swept, err := s.repo.SweepExpiredRentals(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	if swept > 0 {
		s.log.Info("swept expired rentals", slog.Int("count", swept))
	}
	return swept, nil
}
