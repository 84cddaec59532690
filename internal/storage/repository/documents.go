package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// ErrDocumentExists документ с таким URL уже зарегистрирован.
var ErrDocumentExists = errors.New("document with this url already exists")

// Код unique constraint в PostgreSQL: URL документа уникален на всю таблицу.
const uniqueViolationCode = "23505"

// CreateDocument вставляет метаданные документа и возвращает его ID.
// Повторная регистрация того же URL отклоняется.
func (s *Storage) CreateDocument(ctx context.Context, doc models.Document) (uuid.UUID, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO documents (client_id, url, type)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID uuid.UUID
	err := s.DB.QueryRowContext(ctx, query, doc.ClientID, doc.URL, doc.Type).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrDocumentExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListDocuments возвращает документы с именем клиента, новые сверху.
// Поиск идёт по имени клиента, интервал [from, to) фильтрует по дате
// загрузки; пустые значения отключают фильтры.
func (s *Storage) ListDocuments(ctx context.Context, search string,
	from, to time.Time) ([]*models.Document, error) {
	const op = "storage.ListDocuments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.client_id, d.url, d.type, d.created_at, cl.full_name
			  FROM documents d
			  JOIN clients cl ON d.client_id = cl.id
			  WHERE ($1 = '' OR cl.full_name ILIKE '%' || $1 || '%')
			    AND ($2::timestamptz IS NULL OR d.created_at >= $2)
			    AND ($3::timestamptz IS NULL OR d.created_at < $3)
			  ORDER BY d.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, search, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Document
	for rows.Next() {
		var item models.Document
		if err := rows.Scan(&item.ID, &item.ClientID, &item.URL, &item.Type,
			&item.CreatedAt, &item.ClientName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveDocument удаляет метаданные документа по ID.
func (s *Storage) RemoveDocument(ctx context.Context, id uuid.UUID) (int, error) {
	const op = "storage.RemoveDocument"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
