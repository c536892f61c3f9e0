// Package services содержит бизнес-логику для управления компаниями и их каталогами планов.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/66emil/SubscribeTrack/internal/models"
)

// PageSize размер страницы списка компаний.
const PageSize = 12

// CompanyRepository определяет методы для работы с компаниями в хранилище.
type CompanyRepository interface {
	// CreateCompany добавляет новую компанию и возвращает её ID.
	CreateCompany(ctx context.Context, entry models.DummyCompany) (int, error)
	// ReadCompany возвращает компанию по ID вместе с названием категории.
	ReadCompany(ctx context.Context, id int) (*models.Company, error)
	// UpdateCompany обновляет данные компании по ID.
	UpdateCompany(ctx context.Context, entry models.DummyCompany, id int) (int, error)
	// RemoveCompany удаляет компанию по ID и возвращает количество удалённых записей.
	RemoveCompany(ctx context.Context, id int) (int, error)
	// ListCompanies возвращает список компаний с пагинацией и фильтром по категории.
	ListCompanies(ctx context.Context, categoryID *int, limit, offset int) ([]*models.Company, error)
	// CountCompanies возвращает количество компаний с учётом фильтра.
	CountCompanies(ctx context.Context, categoryID *int) (int, error)
	// ListAllCategories возвращает справочник категорий для фильтра.
	ListAllCategories(ctx context.Context) ([]*models.Category, error)
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

// CompanyService реализует бизнес-логику работы с компаниями, включая кеширование.
type CompanyService struct {
	repo  CompanyRepository
	cache Cache
	log   *slog.Logger
}

// NewCompanyService создает новый экземпляр CompanyService.
func NewCompanyService(repo CompanyRepository, cache Cache, log *slog.Logger) *CompanyService {
	return &CompanyService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую компанию и возвращает её ID.
func (s *CompanyService) Create(ctx context.Context, req models.DummyCompany) (int, error) {
	id, err := s.repo.CreateCompany(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new company", slog.Int("id", id))
	return id, nil
}

// Read возвращает компанию по ID, используя кеш или репозиторий.
func (s *CompanyService) Read(ctx context.Context, id int) (*models.Company, error) {
	var result *models.Company
	cacheKey := fmt.Sprintf("company:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет компанию и инвалидирует кеш.
func (s *CompanyService) Update(ctx context.Context, req models.DummyCompany, id int) (int, error) {
	res, err := s.repo.UpdateCompany(ctx, req, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated company in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("company:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет компанию вместе с подписками на неё и инвалидирует кеш.
func (s *CompanyService) Remove(ctx context.Context, id int) (int, error) {
	cacheKey := fmt.Sprintf("company:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveCompany(ctx, id)
}

// List возвращает страницу компаний, общее количество с учётом фильтра
// и справочник категорий для панели фильтрации.
func (s *CompanyService) List(ctx context.Context, categoryID *int, page int) ([]*models.Company, []*models.Category, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	companies, err := s.repo.ListCompanies(ctx, categoryID, PageSize, offset)
	if err != nil {
		return nil, nil, 0, err
	}
	total, err := s.repo.CountCompanies(ctx, categoryID)
	if err != nil {
		return nil, nil, 0, err
	}
	categories, err := s.repo.ListAllCategories(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	return companies, categories, total, nil
}
