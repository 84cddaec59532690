// Package rentalread реализует HTTP-обработчик чтения одного проката по ID.
package rentalread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/ayoubkcm/fleet-backoffice/internal/http/response"
	"github.com/ayoubkcm/fleet-backoffice/internal/lib/sl"
	"github.com/ayoubkcm/fleet-backoffice/internal/models"
	"github.com/ayoubkcm/fleet-backoffice/internal/storage/repository"
)

// Handler отвечает за обработку запросов на чтение проката.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения проката.
type Service interface {
	Read(ctx context.Context, id uuid.UUID) (*models.RentalInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить прокат
// @Description Возвращает прокат с данными автомобиля и клиента и датами в бизнес-времени.
// @Tags Rentals
// @Produce  json
// @Param id path string true "ID проката"
// @Success 200 {object} map[string]any "Данные проката"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Прокат не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /rentals/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.read"

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

	info, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRentalNotFound) {
			log.Info("rental not found", slog.String("id", id.String()))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("rental not found"))
			return
		}
		log.Error("failed to read rental", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read rental"))
		return
	}

	log.Info("rental read", slog.String("id", id.String()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"rental": info,
	}))
}
