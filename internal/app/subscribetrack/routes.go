package subscribetrack

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/66emil/SubscribeTrack/internal/http/handlers/auth/login"
	"github.com/66emil/SubscribeTrack/internal/http/handlers/auth/register"
	categorycreate "github.com/66emil/SubscribeTrack/internal/http/handlers/category/create"
	categorylist "github.com/66emil/SubscribeTrack/internal/http/handlers/category/list"
	categoryread "github.com/66emil/SubscribeTrack/internal/http/handlers/category/read"
	categoryremove "github.com/66emil/SubscribeTrack/internal/http/handlers/category/remove"
	categoryupdate "github.com/66emil/SubscribeTrack/internal/http/handlers/category/update"
	companycreate "github.com/66emil/SubscribeTrack/internal/http/handlers/company/create"
	companylist "github.com/66emil/SubscribeTrack/internal/http/handlers/company/list"
	companyread "github.com/66emil/SubscribeTrack/internal/http/handlers/company/read"
	companyremove "github.com/66emil/SubscribeTrack/internal/http/handlers/company/remove"
	companyupdate "github.com/66emil/SubscribeTrack/internal/http/handlers/company/update"
	"github.com/66emil/SubscribeTrack/internal/http/handlers/stats"
	subscriptioncreate "github.com/66emil/SubscribeTrack/internal/http/handlers/subscription/create"
	subscriptionlist "github.com/66emil/SubscribeTrack/internal/http/handlers/subscription/list"
	subscriptionread "github.com/66emil/SubscribeTrack/internal/http/handlers/subscription/read"
	subscriptionremove "github.com/66emil/SubscribeTrack/internal/http/handlers/subscription/remove"
	subscriptionupdate "github.com/66emil/SubscribeTrack/internal/http/handlers/subscription/update"
	"github.com/66emil/SubscribeTrack/internal/http/middlewarectx"
	authservice "github.com/66emil/SubscribeTrack/internal/services/auth"
	categoryservice "github.com/66emil/SubscribeTrack/internal/services/category"
	companyservice "github.com/66emil/SubscribeTrack/internal/services/company"
	statsservice "github.com/66emil/SubscribeTrack/internal/services/stats"
	subscriptionservice "github.com/66emil/SubscribeTrack/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	categoryService *categoryservice.CategoryService,
	companyService *companyservice.CompanyService,
	subscriptionService *subscriptionservice.SubscriptionService,
	statsService *statsservice.StatsService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки: регистрация, вход и чтение каталога
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/categories", categorylist.New(logger, categoryService).ServeHTTP)
		r.Get("/categories/{id}", categoryread.New(logger, categoryService).ServeHTTP)
		r.Get("/companies", companylist.New(logger, companyService).ServeHTTP)
		r.Get("/companies/{id}", companyread.New(logger, companyService).ServeHTTP)
		r.Get("/stats", stats.New(logger, statsService, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/categories", categorycreate.New(logger, categoryService).ServeHTTP)
			r.Put("/categories/{id}", categoryupdate.New(logger, categoryService).ServeHTTP)
			r.Delete("/categories/{id}", categoryremove.New(logger, categoryService).ServeHTTP)

			r.Post("/companies", companycreate.New(logger, companyService).ServeHTTP)
			r.Put("/companies/{id}", companyupdate.New(logger, companyService).ServeHTTP)
			r.Delete("/companies/{id}", companyremove.New(logger, companyService).ServeHTTP)

			r.Get("/subscriptions", subscriptionlist.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions", subscriptioncreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", subscriptionread.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", subscriptionupdate.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", subscriptionremove.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
