// Package main наполняет базу демонстрационными данными:
// пользователь demo, категории, компании с каталогами планов
// и несколько подписок. Повторный запуск не создаёт дубликатов.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/66emil/SubscribeTrack/internal/config"
	"github.com/66emil/SubscribeTrack/internal/lib/password"
	"github.com/66emil/SubscribeTrack/internal/migrations"
	"github.com/66emil/SubscribeTrack/internal/models"
	"github.com/66emil/SubscribeTrack/internal/storage"
	"github.com/66emil/SubscribeTrack/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.Background()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to open storage", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.DB.Close()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("err", err))
		os.Exit(1)
	}

	userUID, err := seedUser(ctx, db)
	if err != nil {
		logger.Error("failed to seed demo user", slog.Any("err", err))
		os.Exit(1)
	}

	companyIDs, err := seedCatalog(ctx, db, logger)
	if err != nil {
		logger.Error("failed to seed catalog", slog.Any("err", err))
		os.Exit(1)
	}

	if err := seedSubscriptions(ctx, db, logger, userUID, companyIDs); err != nil {
		logger.Error("failed to seed subscriptions", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("seed completed", slog.String("demo_user", "demo"))
}

// seedUser создаёт пользователя demo/demo123 либо возвращает существующего.
func seedUser(ctx context.Context, db *repository.Storage) (string, error) {
	if user, err := db.GetUserByUsername(ctx, "demo"); err == nil {
		return user.UID, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}

	hash, err := password.GetHash("demo123")
	if err != nil {
		return "", err
	}
	return db.RegisterUser(ctx, models.User{
		Email:        "demo@example.com",
		Username:     "demo",
		PasswordHash: hash,
		Role:         "user",
	})
}

type companySeed struct {
	name     string
	category string
	website  string
	plans    models.PlanMap
}

var categorySeeds = []models.DummyCategory{
	{Name: "Стриминг видео", Description: ptr("Онлайн-кинотеатры и видеосервисы")},
	{Name: "Музыка", Description: ptr("Музыкальные стриминговые сервисы")},
	{Name: "Облачные хранилища", Description: ptr("Хранение файлов и резервные копии")},
	{Name: "Образование", Description: ptr("Онлайн-курсы и обучающие платформы")},
	{Name: "Программное обеспечение", Description: ptr("Подписки на приложения и инструменты")},
}

var companySeeds = []companySeed{
	{
		name: "Netflix", category: "Стриминг видео", website: "https://www.netflix.com",
		plans: models.PlanMap{{Name: "Базовый", Price: "599"}, {Name: "Стандарт", Price: "799"}, {Name: "Премиум", Price: "999"}},
	},
	{
		name: "Кинопоиск", category: "Стриминг видео", website: "https://www.kinopoisk.ru",
		plans: models.PlanMap{{Name: "Плюс", Price: "299"}},
	},
	{
		name: "Spotify", category: "Музыка", website: "https://www.spotify.com",
		plans: models.PlanMap{{Name: "Individual", Price: "169"}, {Name: "Family", Price: "269"}},
	},
	{
		name: "Яндекс Музыка", category: "Музыка", website: "https://music.yandex.ru",
		plans: models.PlanMap{{Name: "Плюс", Price: "299"}},
	},
	{
		name: "Dropbox", category: "Облачные хранилища", website: "https://www.dropbox.com",
		plans: models.PlanMap{{Name: "Plus", Price: "1199"}, {Name: "Professional", Price: "1999"}},
	},
	{
		name: "Coursera", category: "Образование", website: "https://www.coursera.org",
		plans: models.PlanMap{{Name: "Plus Monthly", Price: "4990"}},
	},
	{
		name: "JetBrains", category: "Программное обеспечение", website: "https://www.jetbrains.com",
		plans: models.PlanMap{{Name: "All Products Pack", Price: "2490"}},
	},
}

// seedCatalog создаёт категории и компании, возвращая идентификаторы
// компаний по названию. Существующие записи переиспользуются.
func seedCatalog(ctx context.Context, db *repository.Storage, logger *slog.Logger) (map[string]int, error) {
	categoryIDs := make(map[string]int, len(categorySeeds))
	for _, entry := range categorySeeds {
		id, err := db.CreateCategory(ctx, entry)
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		categoryIDs[entry.Name] = id
		logger.Info("created category", slog.String("name", entry.Name), slog.Int("id", id))
	}

	existing, err := db.ListAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range existing {
		categoryIDs[category.Name] = category.ID
	}

	companyIDs := make(map[string]int, len(companySeeds))
	for _, entry := range companySeeds {
		website := entry.website
		id, err := db.CreateCompany(ctx, models.DummyCompany{
			Name:              entry.name,
			CategoryID:        categoryIDs[entry.category],
			Website:           &website,
			SubscriptionPlans: entry.plans,
		})
		if errors.Is(err, storage.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, err
		}
		companyIDs[entry.name] = id
		logger.Info("created company", slog.String("name", entry.name), slog.Int("id", id))
	}

	companies, err := db.ListAllCompanies(ctx)
	if err != nil {
		return nil, err
	}
	for _, company := range companies {
		companyIDs[company.Name] = company.ID
	}
	return companyIDs, nil
}

// seedSubscriptions создаёт подписки пользователя demo, если их ещё нет.
func seedSubscriptions(ctx context.Context, db *repository.Storage, logger *slog.Logger, userUID string, companyIDs map[string]int) error {
	summary, err := db.CountSummary(ctx, userUID)
	if err != nil {
		return err
	}
	if summary.TotalSubscriptions > 0 {
		logger.Info("subscriptions already seeded, skipping")
		return nil
	}

	now := time.Now().Truncate(24 * time.Hour)
	entries := []models.Subscription{
		{
			CompanyID: companyIDs["Netflix"], PlanName: "Стандарт",
			Price: decimal.RequireFromString("799"), BillingPeriod: models.BillingMonthly,
			Status: models.StatusActive, StartDate: now.AddDate(0, -3, 0), NextBillingDate: now.AddDate(0, 1, 0),
		},
		{
			CompanyID: companyIDs["Spotify"], PlanName: "Individual",
			Price: decimal.RequireFromString("169"), BillingPeriod: models.BillingMonthly,
			Status: models.StatusActive, StartDate: now.AddDate(-1, 0, 0), NextBillingDate: now.AddDate(0, 1, 0),
		},
		{
			CompanyID: companyIDs["JetBrains"], PlanName: "All Products Pack",
			Price: decimal.RequireFromString("2490"), BillingPeriod: models.BillingYearly,
			Status: models.StatusActive, StartDate: now.AddDate(0, -6, 0), NextBillingDate: now.AddDate(0, 6, 0),
		},
		{
			CompanyID: companyIDs["Coursera"], PlanName: "Plus Monthly",
			Price: decimal.RequireFromString("4990"), BillingPeriod: models.BillingMonthly,
			Status: models.StatusPaused, StartDate: now.AddDate(0, -2, 0), NextBillingDate: now,
		},
	}
	for _, entry := range entries {
		entry.UserUID = userUID
		id, err := db.CreateSubscription(ctx, entry)
		if err != nil {
			return err
		}
		logger.Info("created subscription", slog.Int("id", id), slog.String("plan", entry.PlanName))
	}
	return nil
}

func ptr(s string) *string { return &s }
