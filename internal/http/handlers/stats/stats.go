// Package stats реализует HTTP-обработчик счётчиков для главной страницы.
//
// Эндпоинт публичный, но при наличии валидного Bearer-токена счётчик
// активных подписок считается для вызывающего пользователя.
package stats

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/66emil/SubscribeTrack/internal/http/response"
	jwtlib "github.com/66emil/SubscribeTrack/internal/lib/jwt"
	"github.com/66emil/SubscribeTrack/internal/lib/sl"
	"github.com/66emil/SubscribeTrack/internal/models"
)

// Handler обрабатывает запросы счётчиков каталога.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис подсчёта счётчиков
	auth    AuthService  // Сервис валидации опционального токена
}

// Service описывает интерфейс подсчёта счётчиков.
type Service interface {
	Counts(ctx context.Context, userUID string) (*models.Stats, error)
}

// AuthService описывает валидацию JWT для опциональной аутентификации.
type AuthService interface {
	ValidateToken(ctx context.Context, token string) (*jwtlib.CustomClaims, error)
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, auth AuthService) *Handler {
	return &Handler{
		log:     log,
		service: service,
		auth:    auth,
	}
}

// ServeHTTP godoc
// @Summary Счётчики каталога
// @Description Возвращает количество категорий, компаний и активных подписок текущего пользователя (0 для анонимов).
// @Tags Stats
// @Produce  json
// @Success 200 {object} map[string]any "Счётчики"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Невалидный токен не ошибка: эндпоинт остаётся публичным.
	var userUID string
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if claims, err := h.auth.ValidateToken(r.Context(), tokenStr); err == nil {
			userUID = claims.UserUID
		}
	}

	stats, err := h.service.Counts(r.Context(), userUID)
	if err != nil {
		log.Error("failed to count stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count stats"))
		return
	}

	log.Info("counted stats")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": stats,
	}))
}
