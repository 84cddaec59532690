package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// CreateCar вставляет новый автомобиль и возвращает его ID.
func (s *Storage) CreateCar(ctx context.Context, car models.Car) (uuid.UUID, error) {
	const op = "storage.CreateCar"
	select {
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cars (model, plate_number, status)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID uuid.UUID
	err := s.DB.QueryRowContext(ctx, query,
		car.Model, car.PlateNumber, car.Status).Scan(&newID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadCar возвращает данные автомобиля по его ID.
func (s *Storage) ReadCar(ctx context.Context, id uuid.UUID) (*models.Car, error) {
	const op = "storage.ReadCar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, model, plate_number, status, created_at
			  FROM cars WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Car
	if err := row.Scan(&result.ID, &result.Model, &result.PlateNumber,
		&result.Status, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCars возвращает список автомобилей вместе с окном последнего
// активного проката и суммарным временем прокатов каждого автомобиля.
// Поиск идёт по модели и номерному знаку без учёта регистра.
func (s *Storage) ListCars(ctx context.Context, filter models.ListFilter) ([]*models.Car, error) {
	const op = "storage.ListCars"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.model, c.plate_number, c.status, c.created_at,
			      cur.start_date, cur.return_date,
			      COALESCE(t.total_ms, 0)
			  FROM cars c
			  LEFT JOIN LATERAL (
			      SELECT r.start_date, r.return_date
			      FROM rentals r
			      WHERE r.car_id = c.id
			        AND r.status IN ('reserved', 'rented')
			      ORDER BY r.start_date DESC
			      LIMIT 1
			  ) cur ON true
			  LEFT JOIN LATERAL (
			      SELECT SUM(EXTRACT(EPOCH FROM (r.return_date - r.start_date)) * 1000)::bigint AS total_ms
			      FROM rentals r
			      WHERE r.car_id = c.id
			  ) t ON true
			  WHERE ($1 = '' OR c.model ILIKE '%' || $1 || '%'
			      OR c.plate_number ILIKE '%' || $1 || '%')
			  ORDER BY c.created_at DESC
			  LIMIT NULLIF($2, 0) OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Car
	for rows.Next() {
		var item models.Car
		var start, ret sql.NullTime
		var totalMs int64
		if err := rows.Scan(&item.ID, &item.Model, &item.PlateNumber, &item.Status,
			&item.CreatedAt, &start, &ret, &totalMs); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if start.Valid && ret.Valid {
			item.CurrentRental = &models.RentalWindow{
				StartDate:  start.Time,
				ReturnDate: ret.Time,
			}
		}
		item.TotalRented = time.Duration(totalMs) * time.Millisecond
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCar обновляет данные автомобиля и возвращает количество изменённых строк.
func (s *Storage) UpdateCar(ctx context.Context, id uuid.UUID, car models.Car) (int, error) {
	const op = "storage.UpdateCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// Пустой статус в запросе означает "не трогать", иначе ручная правка оператора.
	query := `UPDATE cars
			  SET model = $1, plate_number = $2, status = COALESCE(NULLIF($3, ''), status)
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, car.Model, car.PlateNumber, string(car.Status), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateCarStatus меняет только статус автомобиля.
func (s *Storage) UpdateCarStatus(ctx context.Context, id uuid.UUID, status models.CarStatus) (int, error) {
	const op = "storage.UpdateCarStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cars SET status = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCar удаляет автомобиль и возвращает количество удалённых строк.
func (s *Storage) RemoveCar(ctx context.Context, id uuid.UUID) (int, error) {
	const op = "storage.RemoveCar"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cars WHERE id = $1`
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

// CountCarsByStatus возвращает агрегаты по статусам автопарка.
func (s *Storage) CountCarsByStatus(ctx context.Context) (*models.CarStats, error) {
	const op = "storage.CountCarsByStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*),
			      COUNT(*) FILTER (WHERE status = 'available'),
			      COUNT(*) FILTER (WHERE status = 'rented'),
			      COUNT(*) FILTER (WHERE status = 'reserved')
			  FROM cars`
	var stats models.CarStats
	row := s.DB.QueryRowContext(ctx, query)
	if err := row.Scan(&stats.Total, &stats.Available, &stats.Rented, &stats.Reserved); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}
