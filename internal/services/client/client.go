// Package services содержит бизнес-логику работы с клиентами проката.
package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// ClientRepository определяет методы для работы с клиентами в хранилище.
type ClientRepository interface {
	CreateClient(ctx context.Context, client models.Client) (uuid.UUID, error)
	ReadClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ListClients(ctx context.Context, filter models.ListFilter) ([]*models.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, client models.Client) (int, error)
	RemoveClient(ctx context.Context, id uuid.UUID) (int, error)
}

// ClientService реализует бизнес-логику клиентов.
type ClientService struct {
	repo ClientRepository
	log  *slog.Logger
}

// NewClientService создает новый экземпляр ClientService.
func NewClientService(repo ClientRepository, log *slog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

func fromRequest(req models.DummyClient) models.Client {
	return models.Client{
		FullName:           req.FullName,
		PassportID:         req.PassportID,
		DrivingLicense:     req.DrivingLicense,
		Address:            req.Address,
		IDNumber:           req.IDNumber,
		DateOfBirth:        req.DateOfBirth,
		LicenseExpiryDate:  req.LicenseExpiryDate,
		PassportExpiryDate: req.PassportExpiryDate,
		PassportImage:      req.PassportImage,
		LicenseImage:       req.LicenseImage,
	}
}

// Create регистрирует нового клиента и возвращает его ID.
func (s *ClientService) Create(ctx context.Context, req models.DummyClient) (uuid.UUID, error) {
	id, err := s.repo.CreateClient(ctx, fromRequest(req))
	if err != nil {
		return uuid.Nil, err
	}
	s.log.Info("created new client", slog.String("id", id.String()))
	return id, nil
}

// Read возвращает клиента по ID.
func (s *ClientService) Read(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return s.repo.ReadClient(ctx, id)
}

// List возвращает клиентов с поиском и пагинацией.
func (s *ClientService) List(ctx context.Context, filter models.ListFilter) ([]*models.Client, error) {
	return s.repo.ListClients(ctx, filter)
}

// Update меняет данные клиента.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req models.DummyClient) (int, error) {
	res, err := s.repo.UpdateClient(ctx, id, fromRequest(req))
	if err != nil {
		return 0, err
	}
	s.log.Info("updated client", slog.String("id", id.String()))
	return res, nil
}

// Remove удаляет клиента.
func (s *ClientService) Remove(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.RemoveClient(ctx, id)
}
