// Package notifications реализует HTTP-обработчик ленты уведомлений.
//
// Уведомления выводятся из текущего состояния прокатов при каждом запросе
// и нигде не хранятся: выдачи сегодня и завтра, возвраты сегодня, просрочки.
package notifications

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Handler отвечает за обработку запросов ленты уведомлений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики вывода уведомлений.
type Service interface {
	Build(ctx context.Context) ([]models.Notification, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Лента уведомлений
// @Description Возвращает уведомления по активным прокатам на текущий момент.
// @Tags Notifications
// @Produce  json
// @Success 200 {object} map[string]any "Список уведомлений"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notifications"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	items, err := h.service.Build(r.Context())
	if err != nil {
		log.Error("failed to build notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build notifications"))
		return
	}

	log.Info("notifications built", slog.Int("count", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"notifications": items,
		"count":         len(items),
	}))
}
