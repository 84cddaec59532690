package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// CreateClient вставляет нового клиента и возвращает его ID.
func (s *Storage) CreateClient(ctx context.Context, client models.Client) (uuid.UUID, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return uuid.Nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO clients (full_name, passport_id, driving_license, address,
			      id_number, date_of_birth, license_expiry_date, passport_expiry_date,
			      passport_image, license_image)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id`
	var newID uuid.UUID
	err := s.DB.QueryRowContext(ctx, query,
		client.FullName, client.PassportID, client.DrivingLicense, client.Address,
		client.IDNumber, client.DateOfBirth, client.LicenseExpiryDate, client.PassportExpiryDate,
		client.PassportImage, client.LicenseImage).Scan(&newID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadClient возвращает данные клиента по его ID.
func (s *Storage) ReadClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	const op = "storage.ReadClient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, passport_id, driving_license, address,
			      id_number, date_of_birth, license_expiry_date, passport_expiry_date,
			      passport_image, license_image, created_at
			  FROM clients WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Client
	if err := row.Scan(&result.ID, &result.FullName, &result.PassportID, &result.DrivingLicense,
		&result.Address, &result.IDNumber, &result.DateOfBirth, &result.LicenseExpiryDate,
		&result.PassportExpiryDate, &result.PassportImage, &result.LicenseImage,
		&result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListClients возвращает список клиентов. Поиск идёт по имени,
// номеру паспорта и водительского удостоверения без учёта регистра.
func (s *Storage) ListClients(ctx context.Context, filter models.ListFilter) ([]*models.Client, error) {
	const op = "storage.ListClients"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, passport_id, driving_license, address,
			      id_number, date_of_birth, license_expiry_date, passport_expiry_date,
			      passport_image, license_image, created_at
			  FROM clients
			  WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%'
			      OR passport_id ILIKE '%' || $1 || '%'
			      OR driving_license ILIKE '%' || $1 || '%')
			  ORDER BY created_at DESC
			  LIMIT NULLIF($2, 0) OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Client
	for rows.Next() {
		var item models.Client
		if err := rows.Scan(&item.ID, &item.FullName, &item.PassportID, &item.DrivingLicense,
			&item.Address, &item.IDNumber, &item.DateOfBirth, &item.LicenseExpiryDate,
			&item.PassportExpiryDate, &item.PassportImage, &item.LicenseImage,
			&item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateClient обновляет данные клиента и возвращает количество изменённых строк.
func (s *Storage) UpdateClient(ctx context.Context, id uuid.UUID, client models.Client) (int, error) {
	const op = "storage.UpdateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE clients
			  SET full_name = $1, passport_id = $2, driving_license = $3, address = $4,
			      id_number = $5, date_of_birth = $6, license_expiry_date = $7,
			      passport_expiry_date = $8, passport_image = $9, license_image = $10
			  WHERE id = $11`
	result, err := s.DB.ExecContext(ctx, query,
		client.FullName, client.PassportID, client.DrivingLicense, client.Address,
		client.IDNumber, client.DateOfBirth, client.LicenseExpiryDate, client.PassportExpiryDate,
		client.PassportImage, client.LicenseImage, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveClient удаляет клиента и возвращает количество удалённых строк.
func (s *Storage) RemoveClient(ctx context.Context, id uuid.UUID) (int, error) {
	const op = "storage.RemoveClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM clients WHERE id = $1`
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
