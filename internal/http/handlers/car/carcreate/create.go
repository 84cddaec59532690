// Package carcreate реализует HTTP-обработчик для добавления автомобиля в автопарк.
//
// Handler принимает JSON-запрос с данными автомобиля, валидирует их,
// вызывает бизнес-логику создания через сервис и возвращает ID нового
// автомобиля в формате JSON.
package carcreate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
)

// Handler отвечает за обработку запросов на добавление автомобиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления автомобиля.
type Service interface {
	Create(ctx context.Context, req models.DummyCar) (uuid.UUID, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить автомобиль
// @Description Добавляет автомобиль в автопарк со статусом available.
// @Tags Cars
// @Accept  json
// @Produce  json
// @Param request body models.DummyCar true "Данные автомобиля"
// @Success 200 {object} map[string]any "Автомобиль добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /cars [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCar
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create car"))
		return
	}

	log.Info("car created", slog.String("id", id.String()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
