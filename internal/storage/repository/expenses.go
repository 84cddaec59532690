package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// CreateExpense вставляет новый расход и возвращает его ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (uuid.UUID, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (category, amount, expense_date, car_id, description)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID uuid.UUID
	err := s.DB.QueryRowContext(ctx, query,
		expense.Category, expense.Amount, expense.ExpenseDate, expense.CarID,
		expense.Description).Scan(&newID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListExpenses возвращает расходы с данными привязанного автомобиля.
// Интервал [from, to) фильтрует по дате расхода; нулевые значения отключают фильтр.
func (s *Storage) ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.category, e.amount, e.expense_date, e.car_id,
			      e.description, e.created_at,
			      COALESCE(c.model, ''), COALESCE(c.plate_number, '')
			  FROM expenses e
			  LEFT JOIN cars c ON e.car_id = c.id
			  WHERE ($1::timestamptz IS NULL OR e.expense_date >= $1)
			    AND ($2::timestamptz IS NULL OR e.expense_date < $2)
			  ORDER BY e.expense_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.Category, &item.Amount, &item.ExpenseDate,
			&item.CarID, &item.Description, &item.CreatedAt,
			&item.CarModel, &item.PlateNumber); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateExpense обновляет расход и возвращает количество изменённых строк.
func (s *Storage) UpdateExpense(ctx context.Context, id uuid.UUID, expense models.Expense) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET category = $1, amount = $2, expense_date = $3, car_id = $4, description = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		expense.Category, expense.Amount, expense.ExpenseDate, expense.CarID,
		expense.Description, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveExpense удаляет расход и возвращает количество удалённых строк.
func (s *Storage) RemoveExpense(ctx context.Context, id uuid.UUID) (int, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM expenses WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SumExpenses суммирует расходы за интервал [from, to).
// Нулевые значения отключают фильтр.
func (s *Storage) SumExpenses(ctx context.Context, from, to time.Time) (float64, error) {
	const op = "storage.SumExpenses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM expenses
			  WHERE ($1::timestamptz IS NULL OR expense_date >= $1)
			    AND ($2::timestamptz IS NULL OR expense_date < $2)`
	var total float64
	row := s.DB.QueryRowContext(ctx, query, nullTime(from), nullTime(to))
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
