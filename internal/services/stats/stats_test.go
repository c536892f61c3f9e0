package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountCategories(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CountCompanies(ctx context.Context, categoryID *int) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CountActiveSubscriptions(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func TestStatsService_Counts(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountCategories", mock.Anything).Return(5, nil).Once()
	repo.On("CountCompanies", mock.Anything, (*int)(nil)).Return(12, nil).Once()
	repo.On("CountActiveSubscriptions", mock.Anything, "uid-1").Return(3, nil).Once()

	svc := NewStatsService(repo)

	stats, err := svc.Counts(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 5, stats.CategoriesCount)
	assert.Equal(t, 12, stats.CompaniesCount)
	assert.Equal(t, 3, stats.SubscriptionsCount)
	repo.AssertExpectations(t)
}

func TestStatsService_Counts_Anonymous(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountCategories", mock.Anything).Return(5, nil).Once()
	repo.On("CountCompanies", mock.Anything, (*int)(nil)).Return(12, nil).Once()

	svc := NewStatsService(repo)

	stats, err := svc.Counts(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, stats.SubscriptionsCount)
	repo.AssertNotCalled(t, "CountActiveSubscriptions", mock.Anything, mock.Anything)
}
