// Package dashboard реализует HTTP-обработчик сводки по парку.
//
// Сводка собирает счётчики автомобилей по статусам, выручку, расходы
// и прибыль, опционально за календарный месяц бизнес-зоны.
package dashboard

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
	dashboardservice "github.com/ayoubkcm/fleet-backoffice/internal/services/dashboard"
)

// Handler отвечает за обработку запросов сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сводки.
type Service interface {
	Build(ctx context.Context, year int, month time.Month) (*dashboardservice.Summary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка по парку
// @Description Возвращает счётчики автомобилей, выручку, расходы и прибыль.
// @Tags Dashboard
// @Produce  json
// @Param year query int false "Год месяца фильтра"
// @Param month query int false "Месяц фильтра (1-12)"
// @Success 200 {object} map[string]any "Сводка"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

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

	summary, err := h.service.Build(r.Context(), year, month)
	if err != nil {
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard"))
		return
	}

	log.Info("dashboard built")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"summary": summary,
	}))
}

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
