// Package clientlist реализует HTTP-обработчик для получения списка клиентов.
package clientlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Handler отвечает за обработку запросов на получение списка клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка клиентов.
type Service interface {
	List(ctx context.Context, filter models.ListFilter) ([]*models.Client, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает клиентов с поиском по имени и документам.
// @Tags Clients
// @Produce  json
// @Param search query string false "Поиск по имени, паспорту или правам"
// @Param limit query int false "Размер страницы, 0 — без ограничения"
// @Param offset query int false "Смещение страницы"
// @Success 200 {object} map[string]any "Список клиентов"
// @Failure 400 {object} response.ErrorResponse "Некорректная пагинация"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := listFilter(r)
	if err != nil {
		log.Error("failed to parse list filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid limit or offset"))
		return
	}

	clients, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list clients", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list clients"))
		return
	}

	log.Info("clients listed", slog.Int("count", len(clients)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"clients": clients,
		"count":   len(clients),
	}))
}

func listFilter(r *http.Request) (models.ListFilter, error) {
	filter := models.ListFilter{Search: r.URL.Query().Get("search")}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return models.ListFilter{}, strconv.ErrSyntax
		}
		filter.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return models.ListFilter{}, strconv.ErrSyntax
		}
		filter.Offset = offset
	}
	return filter, nil
}
