// Package list реализует HTTP-обработчик для получения списка категорий с пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/66emil/SubscribeTrack/internal/http/response"
	"github.com/66emil/SubscribeTrack/internal/lib/sl"
	"github.com/66emil/SubscribeTrack/internal/models"
)

// Handler обрабатывает запросы на получение страницы категорий.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики категорий
}

// Service описывает интерфейс бизнес-логики листинга категорий.
type Service interface {
	List(ctx context.Context, page int) ([]*models.Category, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список категорий
// @Description Возвращает страницу категорий по алфавиту и общее количество.
// @Tags Categories
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Success 200 {object} map[string]any "Страница категорий"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.category.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	items, total, err := h.service.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list categories"))
		return
	}

	// Пустая страница сериализуется как [], а не null.
	if items == nil {
		items = []*models.Category{}
	}

	log.Info("listed categories", slog.Int("count", len(items)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"categories":  items,
		"total_count": total,
		"page":        page,
	}))
}
