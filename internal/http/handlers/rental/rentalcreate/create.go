// Package rentalcreate реализует HTTP-обработчик для бронирования автомобиля.
//
// Handler принимает JSON-запрос с данными проката, валидирует их,
// вызывает бизнес-логику создания через сервис и возвращает ID нового проката.
// Конфликт интервалов с активным прокатом отдаётся со статусом 409.
package rentalcreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	rentalservice "github.com/ayoubkcm/fleet-backoffice/internal/services/rental"
	"github.com/ayoubkcm/fleet-backoffice/internal/storage/repository"
)

// Handler отвечает за обработку запросов на создание проката.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания проката.
type Service interface {
	Create(ctx context.Context, req models.DummyRental) (uuid.UUID, error)
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
// @Summary Забронировать автомобиль
// @Description Создаёт прокат после проверки доступности автомобиля в интервале.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param request body models.DummyRental true "Данные проката"
// @Success 200 {object} map[string]any "Прокат создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или даты"
// @Failure 409 {object} response.ErrorResponse "Автомобиль уже забронирован в этом интервале"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRental
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
		if errors.Is(err, repository.ErrRentalConflict) {
			log.Info("rental interval conflict", slog.String("car_id", req.CarID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("car is already reserved for this interval"))
			return
		}
		if errors.Is(err, rentalservice.ErrInvalidInterval) {
			log.Error("invalid rental interval", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("return date must be after start date"))
			return
		}
		log.Error("failed to create rental", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not create rental"))
		return
	}

	log.Info("rental created", slog.String("id", id.String()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
