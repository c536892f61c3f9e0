// Package list реализует HTTP-обработчик для получения списка компаний
// с пагинацией и фильтром по категории.
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

// Handler обрабатывает запросы на получение страницы компаний.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики компаний
}

// Service описывает интерфейс бизнес-логики листинга компаний.
type Service interface {
	List(ctx context.Context, categoryID *int, page int) ([]*models.Company, []*models.Category, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список компаний
// @Description Возвращает страницу компаний по алфавиту, общее количество и справочник категорий для фильтра. Некорректный параметр category игнорируется.
// @Tags Companies
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Param category query int false "Фильтр по ID категории"
// @Success 200 {object} map[string]any "Страница компаний"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /companies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.company.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	// Некорректный фильтр не ошибка: показываем все компании.
	var categoryID *int
	if raw := r.URL.Query().Get("category"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			categoryID = &parsed
		}
	}

	companies, categories, total, err := h.service.List(r.Context(), categoryID, page)
	if err != nil {
		log.Error("failed to list companies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list companies"))
		return
	}

	// Пустая страница сериализуется как [], а не null.
	if companies == nil {
		companies = []*models.Company{}
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	log.Info("listed companies", slog.Int("count", len(companies)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"companies":   companies,
		"categories":  categories,
		"total_count": total,
		"page":        page,
	}))
}
