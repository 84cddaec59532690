// Package documentcreate реализует HTTP-обработчик регистрации документа клиента.
//
// Здесь регистрируются только метаданные: ссылка на файл во внешнем
// хранилище, клиент и вид документа. Повторная ссылка отклоняется.
package documentcreate

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
	"github.com/ayoubkcm/fleet-backoffice/internal/storage/repository"
)

// Handler отвечает за обработку запросов на регистрацию документа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации документа.
type Service interface {
	Create(ctx context.Context, req models.DummyDocument) (uuid.UUID, error)
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
// @Summary Зарегистрировать документ
// @Description Регистрирует метаданные документа клиента: ссылку, вид и владельца.
// @Tags Documents
// @Accept  json
// @Produce  json
// @Param request body models.DummyDocument true "Данные документа"
// @Success 200 {object} map[string]any "Документ зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 409 {object} response.ErrorResponse "Документ с такой ссылкой уже есть"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /documents [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyDocument
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
		if errors.Is(err, repository.ErrDocumentExists) {
			log.Info("duplicate document url", slog.String("url", req.URL))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("document with this url already exists"))
			return
		}
		log.Error("failed to create document", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not create document"))
		return
	}

	log.Info("document registered", slog.String("id", id.String()))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
