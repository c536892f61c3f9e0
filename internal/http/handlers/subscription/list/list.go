// Package list реализует HTTP-обработчик для получения списка подписок пользователя
// с пагинацией и агрегатами по всему набору подписок.
//
// Роль admin получает подписки всех пользователей; агрегаты всегда считаются
// по подпискам вызывающего.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/66emil/SubscribeTrack/internal/http/middlewarectx"
	"github.com/66emil/SubscribeTrack/internal/http/response"
	"github.com/66emil/SubscribeTrack/internal/lib/sl"
	"github.com/66emil/SubscribeTrack/internal/models"
)

// Handler обрабатывает запросы на получение страницы подписок.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики подписок
}

// Service описывает интерфейс бизнес-логики листинга подписок.
type Service interface {
	List(ctx context.Context, userUID, role string, page int) ([]*models.Subscription, *models.SubscriptionSummary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает страницу подписок текущего пользователя (для admin — всех) и агрегаты: всего, активных, месячная стоимость.
// @Tags Subscriptions
// @Produce  json
// @Param page query int false "Номер страницы (с 1)"
// @Success 200 {object} map[string]any "Страница подписок с агрегатами"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	entries, summary, err := h.service.List(r.Context(), userUID, role, page)
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	// Пустая страница сериализуется как [], а не null.
	if entries == nil {
		entries = []*models.Subscription{}
	}

	log.Info("listed subscriptions", slog.Int("count", len(entries)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscriptions":        entries,
		"page":                 page,
		"total_subscriptions":  summary.TotalSubscriptions,
		"active_subscriptions": summary.ActiveSubscriptions,
		"total_monthly_cost":   summary.TotalMonthlyCost,
	}))
}
