// Package subscribetrack собирает и запускает основное HTTP-приложение:
// хранилище, кэш, публикацию событий, сервисы и маршруты.
package subscribetrack

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/66emil/SubscribeTrack/internal/cache"
	"github.com/66emil/SubscribeTrack/internal/config"
	"github.com/66emil/SubscribeTrack/internal/lib/jwt"
	"github.com/66emil/SubscribeTrack/internal/lib/rabbitmq"
	"github.com/66emil/SubscribeTrack/internal/lib/sl"
	"github.com/66emil/SubscribeTrack/internal/migrations"
	authservice "github.com/66emil/SubscribeTrack/internal/services/auth"
	categoryservice "github.com/66emil/SubscribeTrack/internal/services/category"
	companyservice "github.com/66emil/SubscribeTrack/internal/services/company"
	statsservice "github.com/66emil/SubscribeTrack/internal/services/stats"
	subscriptionservice "github.com/66emil/SubscribeTrack/internal/services/subscription"
	"github.com/66emil/SubscribeTrack/internal/storage/repository"
)

// App объединяет HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует все зависимости приложения и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Без адреса брокера события не публикуются, остальное работает как обычно.
	var events subscriptionservice.EventPublisher
	if cfg.AddressAMQP != "" {
		conn, err := rabbitmq.Connect(cfg.AddressAMQP, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		publisher, err := rabbitmq.NewPublisher(conn, cfg.Exchange)
		if err != nil {
			return nil, err
		}
		events = publisher
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	categoryService := categoryservice.NewCategoryService(db, cacheRedis, logger)
	companyService := companyservice.NewCompanyService(db, cacheRedis, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(db, events, logger)
	statsService := statsservice.NewStatsService(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger,
		authService, categoryService, companyService, subscriptionService, statsService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.cache.Db.Close(); cerr != nil {
			a.logger.Error("failed to close redis client", sl.Err(cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database connection", sl.Err(cerr))
		}
		return err
	}
}
