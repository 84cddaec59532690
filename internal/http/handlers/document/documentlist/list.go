// Package documentlist реализует HTTP-обработчик списка документов клиентов.
//
// Поиск идёт по имени клиента, фильтр по дате загрузки принимает
// календарные дни бизнес-зоны в формате 2006-01-02.
package documentlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	documentservice "github.com/ayoubkcm/fleet-backoffice/internal/services/document"
)

// Handler отвечает за обработку запросов на список документов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка документов.
type Service interface {
	List(ctx context.Context, search, fromDay, toDay string) ([]*models.Document, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список документов
// @Description Возвращает документы клиентов с поиском по имени и фильтром по дате загрузки.
// @Tags Documents
// @Produce  json
// @Param search query string false "Поиск по имени клиента"
// @Param date_from query string false "Начало фильтра, день бизнес-зоны (2006-01-02)"
// @Param date_to query string false "Конец фильтра включительно, день бизнес-зоны (2006-01-02)"
// @Success 200 {object} map[string]any "Список документов"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /documents [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	documents, err := h.service.List(r.Context(),
		query.Get("search"), query.Get("date_from"), query.Get("date_to"))
	if err != nil {
		if errors.Is(err, documentservice.ErrInvalidDate) {
			log.Error("failed to parse date filter", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date filter"))
			return
		}
		log.Error("failed to list documents", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list documents"))
		return
	}

	log.Info("documents listed", slog.Int("count", len(documents)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"documents": documents,
		"count":     len(documents),
	}))
}
