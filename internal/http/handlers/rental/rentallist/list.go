// Package rentallist реализует HTTP-обработчик списка прокатов.
//
// Список можно ограничить календарным месяцем бизнес-зоны через
// query-параметры year и month; без них возвращаются все прокаты.
// Поиск идёт по модели, номерному знаку и имени клиента.
// Перед выборкой сервис закрывает просроченные прокаты на свободных автомобилях.
package rentallist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Handler отвечает за обработку запросов на список прокатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка прокатов.
type Service interface {
	List(ctx context.Context, year int, month time.Month, filter models.ListFilter) ([]*models.RentalInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список прокатов
// @Description Возвращает прокаты, опционально пересекающиеся с месяцем бизнес-зоны.
// @Tags Rentals
// @Produce  json
// @Param year query int false "Год месяца фильтра"
// @Param month query int false "Месяц фильтра (1-12)"
// @Param search query string false "Поиск по автомобилю или клиенту"
// @Param limit query int false "Размер страницы, 0 — без ограничения"
// @Param offset query int false "Смещение страницы"
// @Success 200 {object} map[string]any "Список прокатов"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	year, month, err := monthFilter(r)
	if err != nil {
		log.Error("failed to parse month filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid year or month"))
		return
	}

	filter, err := listFilter(r)
	if err != nil {
		log.Error("failed to parse list filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid limit or offset"))
		return
	}

	rentals, err := h.service.List(r.Context(), year, month, filter)
	if err != nil {
		log.Error("failed to list rentals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list rentals"))
		return
	}

	log.Info("rentals listed", slog.Int("count", len(rentals)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"rentals": rentals,
		"count":   len(rentals),
	}))
}

// monthFilter читает year и month из query. Оба параметра либо заданы вместе,
// либо опущены. Нулевой год означает отсутствие фильтра.
func monthFilter(r *http.Request) (int, time.Month, error) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" && monthStr == "" {
		return 0, 0, nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return 0, 0, strconv.ErrSyntax
	}
	monthNum, err := strconv.Atoi(monthStr)
	if err != nil || monthNum < 1 || monthNum > 12 {
		return 0, 0, strconv.ErrRange
	}

	return year, time.Month(monthNum), nil
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
