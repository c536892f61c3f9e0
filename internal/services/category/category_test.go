package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/66emil/SubscribeTrack/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateCategory(ctx context.Context, entry models.DummyCategory) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadCategory(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
func (m *RepoMock) UpdateCategory(ctx context.Context, entry models.DummyCategory, id int) (int, error) {
	args := m.Called(ctx, entry, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveCategory(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}
func (m *RepoMock) CountCategories(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListCompanyIDsByCategory(ctx context.Context, categoryID int) ([]int, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCategoryService_Read(t *testing.T) {
	category := &models.Category{ID: 3, Name: "Стриминг видео"}

	t.Run("промах кеша с последующим сохранением", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "category:3", mock.Anything).Return(false, nil).Once()
		repo.On("ReadCategory", mock.Anything, 3).Return(category, nil).Once()
		cache.On("Set", "category:3", category, time.Hour).Return(nil).Once()

		svc := NewCategoryService(repo, cache, newNoopLogger())

		got, err := svc.Read(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, category, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш не ходит в хранилище", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "category:3", mock.Anything).Return(true, nil).Once()

		svc := NewCategoryService(repo, cache, newNoopLogger())

		_, err := svc.Read(context.Background(), 3)
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ReadCategory", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListCompanyIDsByCategory", mock.Anything, 3).Return([]int{10, 11}, nil).Once()
	cache.On("Invalidate", "company:10").Return(nil).Once()
	cache.On("Invalidate", "company:11").Return(nil).Once()
	cache.On("Invalidate", "category:3").Return(nil).Once()
	repo.On("RemoveCategory", mock.Anything, 3).Return(1, nil).Once()

	svc := NewCategoryService(repo, cache, newNoopLogger())

	count, err := svc.Remove(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCategoryService_List(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListCategories", mock.Anything, PageSize, PageSize).
		Return([]*models.Category{{ID: 1}}, nil).Once()
	repo.On("CountCategories", mock.Anything).Return(25, nil).Once()

	svc := NewCategoryService(repo, new(CacheMock), newNoopLogger())

	items, total, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 25, total)
	repo.AssertExpectations(t)
}

func TestCategoryService_List_PageBelowOne(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListCategories", mock.Anything, PageSize, 0).
		Return([]*models.Category{}, nil).Once()
	repo.On("CountCategories", mock.Anything).Return(0, nil).Once()

	svc := NewCategoryService(repo, new(CacheMock), newNoopLogger())

	_, _, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
