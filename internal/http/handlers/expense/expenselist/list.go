// Package expenselist реализует HTTP-обработчик списка расходов.
//
// Фильтр по месяцу работает так же, как в списке прокатов: границы месяца
// считаются в бизнес-зоне и переводятся в UTC на уровне сервиса.
package expenselist

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

// Handler отвечает за обработку запросов на список расходов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка расходов.
type Service interface {
	List(ctx context.Context, year int, month time.Month) ([]*models.Expense, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список расходов
// @Description Возвращает расходы, опционально за календарный месяц бизнес-зоны.
// @Tags Expenses
// @Produce  json
// @Param year query int false "Год месяца фильтра"
// @Param month query int false "Месяц фильтра (1-12)"
// @Success 200 {object} map[string]any "Список расходов"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.list"

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

	expenses, err := h.service.List(r.Context(), year, month)
	if err != nil {
		log.Error("failed to list expenses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list expenses"))
		return
	}

	log.Info("expenses listed", slog.Int("count", len(expenses)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"expenses": expenses,
		"count":    len(expenses),
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
