// Package carread реализует HTTP-обработчик для получения автомобиля по ID.
package carread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Handler отвечает за обработку запросов на чтение автомобиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения автомобиля.
type Service interface {
	Read(ctx context.Context, id uuid.UUID) (*models.Car, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить автомобиль по ID
// @Tags Cars
// @Produce  json
// @Param id path string true "ID автомобиля"
// @Success 200 {object} map[string]any "Данные автомобиля"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Автомобиль не найден"
// @Router /cars/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	car, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read car", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("car not found"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"car": car,
	}))
}
