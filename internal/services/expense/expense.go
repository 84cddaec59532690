// Package services содержит бизнес-логику учёта расходов автопарка.
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

// ExpenseRepository определяет методы для работы с расходами в хранилище.
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense models.Expense) (uuid.UUID, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, expense models.Expense) (int, error)
	RemoveExpense(ctx context.Context, id uuid.UUID) (int, error)
}

// ExpenseService реализует бизнес-логику расходов.
type ExpenseService struct {
	repo ExpenseRepository
	tz   *timezone.Timezone
	log  *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, tz *timezone.Timezone, log *slog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, tz: tz, log: log}
}

// fromRequest разбирает JSON-запрос в модель расхода, переводя дату
// из настенного времени бизнес-зоны в UTC.
func (s *ExpenseService) fromRequest(req models.DummyExpense) (models.Expense, error) {
	date, err := s.tz.ToUTC(req.ExpenseDate)
	if err != nil {
		return models.Expense{}, fmt.Errorf("invalid expense date: %w", err)
	}
	expense := models.Expense{
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: date,
		Description: req.Description,
	}
	if req.CarID != "" {
		carID, err := uuid.Parse(req.CarID)
		if err != nil {
			return models.Expense{}, fmt.Errorf("invalid car id: %w", err)
		}
		expense.CarID = &carID
	}
	return expense, nil
}

// Create добавляет расход и возвращает его ID.
func (s *ExpenseService) Create(ctx context.Context, req models.DummyExpense) (uuid.UUID, error) {
	expense, err := s.fromRequest(req)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("created new expense",
		slog.String("id", id.String()),
		slog.String("category", req.Category))
	return id, nil
}

// List возвращает расходы, опционально отфильтрованные по месяцу бизнес-зоны.
func (s *ExpenseService) List(ctx context.Context, year int, month time.Month) ([]*models.Expense, error) {
	var from, to time.Time
	if year != 0 {
		from, to = s.tz.MonthRange(year, month)
	}
	return s.repo.ListExpenses(ctx, from, to)
}

// Update меняет данные расхода.
func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, req models.DummyExpense) (int, error) {
	expense, err := s.fromRequest(req)
	if err != nil {
		return 0, err
	}
	res, err := s.repo.UpdateExpense(ctx, id, expense)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated expense", slog.String("id", id.String()))
	return res, nil
}

// Remove удаляет расход.
func (s *ExpenseService) Remove(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.RemoveExpense(ctx, id)
}
