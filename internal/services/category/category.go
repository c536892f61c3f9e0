// Package services содержит бизнес-логику для управления категориями компаний.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/66emil/SubscribeTrack/internal/models"
)

// PageSize размер страницы списка категорий.
const PageSize = 10

// CategoryRepository определяет методы для работы с категориями в хранилище.
type CategoryRepository interface {
	// CreateCategory добавляет новую категорию и возвращает её ID.
	CreateCategory(ctx context.Context, entry models.DummyCategory) (int, error)
	// ReadCategory возвращает категорию по ID.
	ReadCategory(ctx context.Context, id int) (*models.Category, error)
	// UpdateCategory обновляет данные категории по ID.
	UpdateCategory(ctx context.Context, entry models.DummyCategory, id int) (int, error)
	// RemoveCategory удаляет категорию по ID и возвращает количество удалённых записей.
	RemoveCategory(ctx context.Context, id int) (int, error)
	// ListCategories возвращает список категорий с пагинацией.
	ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error)
	// CountCategories возвращает общее количество категорий.
	CountCategories(ctx context.Context) (int, error)
	// ListCompanyIDsByCategory возвращает ID компаний категории.
	ListCompanyIDsByCategory(ctx context.Context, categoryID int) ([]int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CategoryService реализует бизнес-логику работы с категориями, включая кеширование.
type CategoryService struct {
	repo  CategoryRepository
	cache Cache
	log   *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, cache Cache, log *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую категорию и возвращает её ID.
func (s *CategoryService) Create(ctx context.Context, req models.DummyCategory) (int, error) {
	id, err := s.repo.CreateCategory(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new category", slog.Int("id", id))
	return id, nil
}

// Read возвращает категорию по ID, используя кеш или репозиторий.
func (s *CategoryService) Read(ctx context.Context, id int) (*models.Category, error) {
	var result *models.Category
	cacheKey := fmt.Sprintf("category:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет категорию и обновляет кеш.
func (s *CategoryService) Update(ctx context.Context, req models.DummyCategory, id int) (int, error) {
	res, err := s.repo.UpdateCategory(ctx, req, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated category in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("category:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет категорию вместе с её компаниями и подписками на них.
// Перед каскадным удалением инвалидирует кеш компаний категории.
func (s *CategoryService) Remove(ctx context.Context, id int) (int, error) {
	companyIDs, err := s.repo.ListCompanyIDsByCategory(ctx, id)
	if err != nil {
		return 0, err
	}
	for _, companyID := range companyIDs {
		companyKey := fmt.Sprintf("company:%d", companyID)
		if err := s.cache.Invalidate(companyKey); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", companyKey), slog.Any("err", err))
		}
	}

	cacheKey := fmt.Sprintf("category:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return s.repo.RemoveCategory(ctx, id)
}

// List возвращает страницу категорий и общее количество.
// Номера страниц начинаются с единицы.
func (s *CategoryService) List(ctx context.Context, page int) ([]*models.Category, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	items, err := s.repo.ListCategories(ctx, PageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountCategories(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
