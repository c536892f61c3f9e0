// Package services содержит бизнес-логику подсчёта счётчиков для главной страницы.
package services

import (
	"context"

	"github.com/66emil/SubscribeTrack/internal/models"
)

// StatsRepository определяет методы подсчёта записей в хранилище.
type StatsRepository interface {
	// CountCategories возвращает общее количество категорий.
	CountCategories(ctx context.Context) (int, error)
	// CountCompanies возвращает количество компаний с учётом фильтра.
	CountCompanies(ctx context.Context, categoryID *int) (int, error)
	// CountActiveSubscriptions возвращает количество активных подписок пользователя.
	CountActiveSubscriptions(ctx context.Context, userUID string) (int, error)
}

// StatsService считает счётчики каталога и подписок текущего пользователя.
type StatsService struct {
	repo StatsRepository
}

// NewStatsService создает новый экземпляр StatsService.
func NewStatsService(repo StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Counts возвращает счётчики категорий, компаний и активных подписок пользователя.
// Для анонимного запроса (пустой userUID) счётчик подписок равен нулю.
func (s *StatsService) Counts(ctx context.Context, userUID string) (*models.Stats, error) {
	categories, err := s.repo.CountCategories(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.repo.CountCompanies(ctx, nil)
	if err != nil {
		return nil, err
	}

	var subscriptions int
	if userUID != "" {
		subscriptions, err = s.repo.CountActiveSubscriptions(ctx, userUID)
		if err != nil {
			return nil, err
		}
	}

	return &models.Stats{
		CategoriesCount:    categories,
		CompaniesCount:     companies,
		SubscriptionsCount: subscriptions,
	}, nil
}
