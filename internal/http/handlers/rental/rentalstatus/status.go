// Package rentalstatus реализует HTTP-обработчик смены статуса проката.
//
// Переходы выдачи и возврата меняют и статус автомобиля; завершённый
// прокат менять нельзя, попытка отдаётся со статусом 409.
package rentalstatus

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
	"github.com/ayoubkcm/fleet-backoffice/internal/storage/repository"
)

// Handler отвечает за обработку запросов на смену статуса проката.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены статуса проката.
type Service interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.RentalStatus) (int, error)
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
// @Summary Сменить статус проката
// @Description Переводит прокат в rented или returned с побочным эффектом на статус автомобиля.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Param id path string true "ID проката"
// @Param request body models.DummyRentalStatus true "Новый статус"
// @Success 200 {object} map[string]any "Количество обновленных записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Прокат не найден"
// @Failure 409 {object} response.ErrorResponse "Прокат уже завершён"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.status"

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

	var req models.DummyRentalStatus
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

	count, err := h.service.UpdateStatus(r.Context(), id, models.RentalStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRentalNotFound):
			log.Info("rental not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
		case errors.Is(err, repository.ErrRentalReturned):
			log.Info("rental already returned", slog.String("id", id.String()))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("rental is already returned"))
		case errors.Is(err, repository.ErrRentalStatusBackward):
			log.Info("backward rental status transition rejected", slog.String("id", id.String()))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("rental status cannot move backward"))
		default:
			log.Error("failed to update rental status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update rental status"))
		}
		return
	}

	log.Info("rental status updated",
		slog.String("id", id.String()),
		slog.String("status", req.Status),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": count,
	}))
}
