// Package rentalupdate реализует HTTP-обработчик полного редактирования проката.
//
// Новый интервал проверяется на пересечения с другими активными прокатами
// того же автомобиля, сам редактируемый прокат из проверки исключается.
package rentalupdate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
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

// Handler отвечает за обработку запросов на редактирование проката.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики редактирования проката.
type Service interface {
	Update(ctx context.Context, id uuid.UUID, req models.DummyRental) (int, error)
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
// @Summary Изменить прокат
// @Description Меняет интервал и цену проката после повторной проверки доступности.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param id path string true "ID проката"
// @Param request body models.DummyRental true "Новые данные проката"
// @Success 200 {object} map[string]any "Количество обновленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Прокат не найден"
// @Failure 409 {object} response.ErrorResponse "Интервал пересекается с другим прокатом"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to parse rental id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid rental id"))
		return
	}

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

	count, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRentalNotFound):
			log.Info("rental not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
		case errors.Is(err, repository.ErrRentalConflict):
			log.Info("rental interval conflict", slog.String("id", id.String()))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("car is already reserved for this interval"))
		case errors.Is(err, rentalservice.ErrInvalidInterval):
			log.Error("invalid rental interval", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("return date must be after start date"))
		default:
			log.Error("failed to update rental", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update rental"))
		}
		return
	}

	log.Info("rental updated", slog.String("id", id.String()), slog.Int("count", count))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": count,
	}))
}
