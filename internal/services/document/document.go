// Package services содержит бизнес-логику реестра документов клиентов.
// Сервис управляет только метаданными: файлы живут во внешнем хранилище,
// сюда попадают ссылки на них.
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

// dayLayout формат дат фильтра списка: календарный день бизнес-зоны.
const dayLayout = "2006-01-02"

// ErrInvalidDate дата фильтра не разобралась как календарный день.
var ErrInvalidDate = errors.New("invalid date filter")

// DocumentRepository определяет методы для работы с документами в хранилище.
type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc models.Document) (uuid.UUID, error)
	ListDocuments(ctx context.Context, search string, from, to time.Time) ([]*models.Document, error)
	RemoveDocument(ctx context.Context, id uuid.UUID) (int, error)
}

// DocumentService реализует бизнес-логику реестра документов.
type DocumentService struct {
	repo DocumentRepository
	tz   *timezone.Timezone
	log  *slog.Logger
}

// NewDocumentService создает новый экземпляр DocumentService.
func NewDocumentService(repo DocumentRepository, tz *timezone.Timezone, log *slog.Logger) *DocumentService {
	return &DocumentService{repo: repo, tz: tz, log: log}
}

// Create регистрирует документ и возвращает его ID. Пустой тип
// трактуется как "other".
func (s *DocumentService) Create(ctx context.Context, req models.DummyDocument) (uuid.UUID, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid client id: %w", err)
	}

	docType := models.DocumentType(req.Type)
	if docType == "" {
		docType = models.DocumentTypeOther
	}

	id, err := s.repo.CreateDocument(ctx, models.Document{
		ClientID: clientID,
		URL:      req.URL,
		Type:     docType,
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("registered new document",
		slog.String("id", id.String()),
		slog.String("client_id", clientID.String()),
		slog.String("type", string(docType)))
	return id, nil
}

// List возвращает документы с поиском по имени клиента и фильтром по дате
// загрузки. Границы фильтра приходят календарными днями бизнес-зоны:
// fromDay включается с начала дня, toDay включается целиком.
func (s *DocumentService) List(ctx context.Context, search, fromDay, toDay string) ([]*models.Document, error) {
	from, err := s.parseDay(fromDay, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, fromDay)
	}
	to, err := s.parseDay(toDay, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDate, toDay)
	}
	return s.repo.ListDocuments(ctx, search, from, to)
}

// parseDay переводит календарный день бизнес-зоны в UTC-границу,
// сдвинутую на addDays дней. Пустая строка отключает границу.
func (s *DocumentService) parseDay(day string, addDays int) (time.Time, error) {
	if day == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dayLayout, day, s.tz.Location())
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, addDays).UTC(), nil
}

// Remove удаляет метаданные документа.
func (s *DocumentService) Remove(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.RemoveDocument(ctx, id)
}
