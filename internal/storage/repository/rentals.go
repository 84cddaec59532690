package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Ошибки доменных инвариантов хранилища прокатов.
var (
	// ErrRentalConflict интервал проката пересекается с другим активным прокатом.
	ErrRentalConflict = errors.New("rental interval conflicts with an active rental")
	// ErrRentalNotFound прокат не найден.
	ErrRentalNotFound = errors.New("rental not found")
	// ErrRentalReturned прокат уже завершён, статус менять нельзя.
	ErrRentalReturned = errors.New("rental already returned")
	// ErrRentalStatusBackward попытка откатить статус проката назад.
	ErrRentalStatusBackward = errors.New("rental status cannot move backward")
)

// statusRank задаёт порядок статусов проката: переходы допустимы только
// в сторону возрастания ранга.
var statusRank = map[models.RentalStatus]int{
	models.RentalStatusReserved: 0,
	models.RentalStatusRented:   1,
	models.RentalStatusReturned: 2,
}

// Код exclusion constraint в PostgreSQL. Ограничение no_active_rental_overlap
// страхует проверку пересечений от гонок за пределами блокировки строки автомобиля.
const exclusionViolationCode = "23P01"

// querier объединяет *sql.DB и *sql.Tx, чтобы проверку пересечений
// можно было выполнять и внутри транзакции, и вне её.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// findConflicts возвращает активные прокаты автомобиля, пересекающиеся
// с полуоткрытым интервалом [start, ret). Касание границ пересечением не считается.
func findConflicts(ctx context.Context, q querier, carID uuid.UUID,
	start, ret time.Time, excludeID uuid.UUID) ([]*models.Rental, error) {
	query := `SELECT id, car_id, client_id, start_date, return_date, rental_price, status, created_at
			  FROM rentals
			  WHERE car_id = $1
			    AND status IN ('reserved', 'rented')
			    AND start_date < $2
			    AND return_date > $3
			    AND id <> $4`
	rows, err := q.QueryContext(ctx, query, carID, ret, start, excludeID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Rental
	for rows.Next() {
		var item models.Rental
		if err := rows.Scan(&item.ID, &item.CarID, &item.ClientID, &item.StartDate,
			&item.ReturnDate, &item.RentalPrice, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

// lockCarStatus берёт блокировку строки автомобиля и возвращает его статус.
// Все изменения прокатов одного автомобиля сериализуются через эту блокировку.
func lockCarStatus(ctx context.Context, tx *sql.Tx, carID uuid.UUID) (models.CarStatus, error) {
	var status models.CarStatus
	row := tx.QueryRowContext(ctx, `SELECT status FROM cars WHERE id = $1 FOR UPDATE`, carID)
	if err := row.Scan(&status); err != nil {
		return "", err
	}
	return status, nil
}

// resolveConflicts реализует auto-heal: если автомобиль числится свободным,
// а пересекающиеся прокаты остались, значит оператор вручную освободил машину,
// а прокаты не закрылись. Такие прокаты принудительно завершаются, и интервал
// считается свободным. При любом другом статусе автомобиля пересечение реально.
func resolveConflicts(ctx context.Context, tx *sql.Tx, carStatus models.CarStatus,
	conflicts []*models.Rental) (bool, error) {
	if len(conflicts) == 0 {
		return true, nil
	}
	if carStatus != models.CarStatusAvailable {
		return false, nil
	}
	ids := make([]uuid.UUID, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = 'returned' WHERE id = ANY($1)`, ids)
	if err != nil {
		return false, err
	}
	return true, nil
}

// CheckCarAvailability проверяет, свободен ли автомобиль в интервале [start, ret),
// исключая прокат excludeID. Попутно завершает зависшие прокаты (auto-heal).
func (s *Storage) CheckCarAvailability(ctx context.Context, carID uuid.UUID,
	start, ret time.Time, excludeID uuid.UUID) (bool, error) {
	const op = "storage.CheckCarAvailability"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	carStatus, err := lockCarStatus(ctx, tx, carID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	conflicts, err := findConflicts(ctx, tx, carID, start, ret, excludeID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	available, err := resolveConflicts(ctx, tx, carStatus, conflicts)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return available, nil
}

// CreateRental атомарно проверяет доступность автомобиля, вставляет прокат
// и обновляет статус автомобиля. Проверка и вставка выполняются под блокировкой
// строки автомобиля, параллельное бронирование того же интервала получит ErrRentalConflict.
func (s *Storage) CreateRental(ctx context.Context, rental models.Rental) (uuid.UUID, error) {
	const op = "storage.CreateRental"
	select {
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	carStatus, err := lockCarStatus(ctx, tx, rental.CarID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	conflicts, err := findConflicts(ctx, tx, rental.CarID, rental.StartDate, rental.ReturnDate, uuid.Nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	available, err := resolveConflicts(ctx, tx, carStatus, conflicts)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if !available {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrRentalConflict)
	}

	query := `INSERT INTO rentals (car_id, client_id, start_date, return_date, rental_price, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID uuid.UUID
	err = tx.QueryRowContext(ctx, query,
		rental.CarID, rental.ClientID, rental.StartDate, rental.ReturnDate,
		rental.RentalPrice, rental.Status).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolationCode {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrRentalConflict)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	// Побочный эффект на статус автомобиля: rented выставляется всегда,
	// reserved только если машина сейчас не выдана.
	switch rental.Status {
	case models.RentalStatusRented:
		_, err = tx.ExecContext(ctx, `UPDATE cars SET status = 'rented' WHERE id = $1`, rental.CarID)
	case models.RentalStatusReserved:
		if carStatus != models.CarStatusRented {
			_, err = tx.ExecContext(ctx, `UPDATE cars SET status = 'reserved' WHERE id = $1`, rental.CarID)
		}
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadRental возвращает прокат с денормализованными полями автомобиля и клиента.
func (s *Storage) ReadRental(ctx context.Context, id uuid.UUID) (*models.RentalInfo, error) {
	const op = "storage.ReadRental"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.car_id, r.client_id, r.start_date, r.return_date,
			      r.rental_price, r.status, r.created_at,
			      c.model, c.plate_number, cl.full_name
			  FROM rentals r
			  JOIN cars c ON r.car_id = c.id
			  JOIN clients cl ON r.client_id = cl.id
			  WHERE r.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.RentalInfo
	if err := row.Scan(&result.ID, &result.CarID, &result.ClientID, &result.StartDate,
		&result.ReturnDate, &result.RentalPrice, &result.Status, &result.CreatedAt,
		&result.CarModel, &result.PlateNumber, &result.ClientName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListRentals возвращает прокаты с данными автомобиля и клиента.
// Интервал [from, to) фильтрует по дате начала проката; нулевые значения
// отключают фильтр.
func (s *Storage) ListRentals(ctx context.Context, from, to time.Time,
	filter models.ListFilter) ([]*models.RentalInfo, error) {
	const op = "storage.ListRentals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.car_id, r.client_id, r.start_date, r.return_date,
			      r.rental_price, r.status, r.created_at,
			      c.model, c.plate_number, cl.full_name
			  FROM rentals r
			  JOIN cars c ON r.car_id = c.id
			  JOIN clients cl ON r.client_id = cl.id
			  WHERE ($1::timestamptz IS NULL OR r.start_date >= $1)
			    AND ($2::timestamptz IS NULL OR r.start_date < $2)
			    AND ($3 = '' OR c.model ILIKE '%' || $3 || '%'
			        OR c.plate_number ILIKE '%' || $3 || '%'
			        OR cl.full_name ILIKE '%' || $3 || '%')
			  ORDER BY r.start_date DESC
			  LIMIT NULLIF($4, 0) OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query, nullTime(from), nullTime(to),
		filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RentalInfo
	for rows.Next() {
		var item models.RentalInfo
		if err := rows.Scan(&item.ID, &item.CarID, &item.ClientID, &item.StartDate,
			&item.ReturnDate, &item.RentalPrice, &item.Status, &item.CreatedAt,
			&item.CarModel, &item.PlateNumber, &item.ClientName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindActiveRentals возвращает все прокаты в статусах reserved и rented
// с данными автомобиля и клиента. Используется при построении уведомлений.
func (s *Storage) FindActiveRentals(ctx context.Context) ([]*models.RentalInfo, error) {
	const op = "storage.FindActiveRentals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.car_id, r.client_id, r.start_date, r.return_date,
			      r.rental_price, r.status, r.created_at,
			      c.model, c.plate_number, cl.full_name
			  FROM rentals r
			  JOIN cars c ON r.car_id = c.id
			  JOIN clients cl ON r.client_id = cl.id
			  WHERE r.status IN ('reserved', 'rented')
			  ORDER BY r.start_date`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RentalInfo
	for rows.Next() {
		var item models.RentalInfo
		if err := rows.Scan(&item.ID, &item.CarID, &item.ClientID, &item.StartDate,
			&item.ReturnDate, &item.RentalPrice, &item.Status, &item.CreatedAt,
			&item.CarModel, &item.PlateNumber, &item.ClientName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindOverdueRentals возвращает выданные автомобили, не возвращённые к моменту now.
func (s *Storage) FindOverdueRentals(ctx context.Context, now time.Time) ([]*models.RentalInfo, error) {
	const op = "storage.FindOverdueRentals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT r.id, r.car_id, r.client_id, r.start_date, r.return_date,
			      r.rental_price, r.status, r.created_at,
			      c.model, c.plate_number, cl.full_name
			  FROM rentals r
			  JOIN cars c ON r.car_id = c.id
			  JOIN clients cl ON r.client_id = cl.id
			  WHERE r.status = 'rented'
			    AND r.return_date < $1
			  ORDER BY r.return_date`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RentalInfo
	for rows.Next() {
		var item models.RentalInfo
		if err := rows.Scan(&item.ID, &item.CarID, &item.ClientID, &item.StartDate,
			&item.ReturnDate, &item.RentalPrice, &item.Status, &item.CreatedAt,
			&item.CarModel, &item.PlateNumber, &item.ClientName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateRentalInterval меняет автомобиль, клиента, интервал и цену проката.
// Новый интервал проходит ту же проверку пересечений, что и создание,
// против целевого автомобиля, исключая сам прокат. Статусы автомобилей
// при этом не трогаются.
func (s *Storage) UpdateRentalInterval(ctx context.Context, id, carID, clientID uuid.UUID,
	start, ret time.Time, price float64) (int, error) {
	const op = "storage.UpdateRentalInterval"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var exists bool
	row := tx.QueryRowContext(ctx, `SELECT TRUE FROM rentals WHERE id = $1`, id)
	if err = row.Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// Блокировка и проверка пересечений идут по целевому автомобилю:
	// при переносе проката на другую машину важен её календарь, не старый.
	carStatus, err := lockCarStatus(ctx, tx, carID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	conflicts, err := findConflicts(ctx, tx, carID, start, ret, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	available, err := resolveConflicts(ctx, tx, carStatus, conflicts)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !available {
		return 0, fmt.Errorf("%s: %w", op, ErrRentalConflict)
	}

	query := `UPDATE rentals
			  SET car_id = $1, client_id = $2, start_date = $3, return_date = $4, rental_price = $5
			  WHERE id = $6`
	result, err := tx.ExecContext(ctx, query, carID, clientID, start, ret, price, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == exclusionViolationCode {
			return 0, fmt.Errorf("%s: %w", op, ErrRentalConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateRentalStatus меняет статус проката и синхронизирует статус автомобиля:
// завершённый прокат освобождает машину, остальные статусы переносятся на неё.
// Переходы допустимы только вперёд, завершённый прокат менять нельзя.
func (s *Storage) UpdateRentalStatus(ctx context.Context, id uuid.UUID,
	status models.RentalStatus) (int, error) {
	const op = "storage.UpdateRentalStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var carID uuid.UUID
	var current models.RentalStatus
	row := tx.QueryRowContext(ctx,
		`SELECT car_id, status FROM rentals WHERE id = $1 FOR UPDATE`, id)
	if err = row.Scan(&carID, &current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if current == models.RentalStatusReturned && status != models.RentalStatusReturned {
		return 0, fmt.Errorf("%s: %w", op, ErrRentalReturned)
	}
	if statusRank[status] < statusRank[current] {
		return 0, fmt.Errorf("%s: %w", op, ErrRentalStatusBackward)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE rentals SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	carStatus := models.CarStatus(status)
	if status == models.RentalStatusReturned {
		carStatus = models.CarStatusAvailable
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE cars SET status = $1 WHERE id = $2`, carStatus, carID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveRental удаляет прокат. Удаление активного проката освобождает автомобиль.
func (s *Storage) RemoveRental(ctx context.Context, id uuid.UUID) (int, error) {
	const op = "storage.RemoveRental"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var carID uuid.UUID
	var status models.RentalStatus
	row := tx.QueryRowContext(ctx,
		`SELECT car_id, status FROM rentals WHERE id = $1`, id)
	if err = row.Scan(&carID, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, ErrRentalNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if status.Active() {
		if _, err = tx.ExecContext(ctx,
			`UPDATE cars SET status = 'available' WHERE id = $1`, carID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SweepExpiredRentals завершает активные прокаты, чья дата возврата уже прошла,
// и освобождает их автомобили. Возвращает количество завершённых прокатов.
func (s *Storage) SweepExpiredRentals(ctx context.Context, now time.Time) (int, error) {
	const op = "storage.SweepExpiredRentals"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE rentals
			  SET status = 'returned'
			  WHERE status IN ('reserved', 'rented')
			    AND return_date < $1
			  RETURNING car_id`
	rows, err := tx.QueryContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var carIDs []uuid.UUID
	for rows.Next() {
		var carID uuid.UUID
		if err := rows.Scan(&carID); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		carIDs = append(carIDs, carID)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if len(carIDs) > 0 {
		if _, err = tx.ExecContext(ctx,
			`UPDATE cars SET status = 'available' WHERE id = ANY($1)`, carIDs); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return len(carIDs), nil
}

// SumRentalRevenue суммирует стоимость прокатов, начавшихся в интервале [from, to).
// Нулевые значения отключают фильтр.
func (s *Storage) SumRentalRevenue(ctx context.Context, from, to time.Time) (float64, error) {
	const op = "storage.SumRentalRevenue"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(rental_price), 0)
			  FROM rentals
			  WHERE ($1::timestamptz IS NULL OR start_date >= $1)
			    AND ($2::timestamptz IS NULL OR start_date < $2)`
	var total float64
	row := s.DB.QueryRowContext(ctx, query, nullTime(from), nullTime(to))
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// nullTime превращает нулевое время в NULL для опциональных фильтров.
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
