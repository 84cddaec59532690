// Package rentalavailability реализует HTTP-обработчик явной проверки доступности.
//
// Используется фронтендом до отправки формы брони: при редактировании
// существующего проката его собственный интервал исключается из проверки.
package rentalavailability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	rentalservice "github.com/ayoubkcm/fleet-backoffice/internal/services/rental"
)

// Handler отвечает за обработку запросов проверки доступности автомобиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики проверки доступности.
type Service interface {
	CheckAvailability(ctx context.Context, req models.DummyAvailability) (bool, error)
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
// @Summary Проверить доступность автомобиля
// @Description Сообщает, свободен ли автомобиль в интервале без создания проката.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param request body models.DummyAvailability true "Интервал и автомобиль"
// @Success 200 {object} map[string]any "Флаг доступности"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals/availability [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.availability"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAvailability
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	available, err := h.service.CheckAvailability(r.Context(), req)
	if err != nil {
		if errors.Is(err, rentalservice.ErrInvalidInterval) {
			log.Error("invalid rental interval", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("return date must be after start date"))
			return
		}
		log.Error("failed to check availability", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not check availability"))
		return
	}

	log.Info("availability checked",
		slog.String("car_id", req.CarID),
		slog.Bool("available", available),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"available": available,
	}))
}
