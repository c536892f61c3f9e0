package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/66emil/SubscribeTrack/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscription(ctx context.Context, entry models.Subscription) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ReadSubscription(ctx context.Context, id int, userUID string) (*models.Subscription, error) {
	args := m.Called(ctx, id, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) UpdateSubscription(ctx context.Context, entry models.Subscription, id int, userUID string) (int, error) {
	args := m.Called(ctx, entry, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveSubscription(ctx context.Context, id int, userUID string) (int, error) {
	args := m.Called(ctx, id, userUID)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListSubscriptions(ctx context.Context, userUID string, limit, offset int) ([]*models.Subscription, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}
func (m *RepoMock) ListAllSubscriptions(ctx context.Context, limit, offset int) ([]*models.Subscription, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}
func (m *RepoMock) CountSummary(ctx context.Context, userUID string) (*models.SubscriptionSummary, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionSummary), args.Error(1)
}
func (m *RepoMock) ListAllCompanies(ctx context.Context) ([]*models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Company), args.Error(1)
}

type EventsMock struct{ mock.Mock }

func (m *EventsMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const testUserUID = "11111111-1111-1111-1111-111111111111"

func validRequest() models.DummySubscription {
	return models.DummySubscription{
		CompanyID:       3,
		PlanName:        "Премиум",
		Price:           decimal.NewFromFloat(599.99),
		StartDate:       "2026-01-15",
		NextBillingDate: "2026-02-15",
	}
}

func TestSubscriptionService_Create(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, e *EventsMock)
		mutate     func(req *models.DummySubscription)
		wantID     int
		wantErr    error
	}{
		{
			name: "успешное создание со значениями по умолчанию",
			setupMocks: func(r *RepoMock, e *EventsMock) {
				r.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(entry models.Subscription) bool {
					return entry.UserUID == testUserUID &&
						entry.BillingPeriod == models.BillingMonthly &&
						entry.Status == models.StatusActive &&
						entry.StartDate.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
				})).Return(42, nil).Once()
				e.On("Publish", EventCreated, mock.Anything).Return(nil).Once()
			},
			wantID: 42,
		},
		{
			name:       "нулевая цена отклоняется",
			setupMocks: func(_ *RepoMock, _ *EventsMock) {},
			mutate: func(req *models.DummySubscription) {
				req.Price = decimal.Zero
			},
			wantErr: ErrNonPositivePrice,
		},
		{
			name:       "отрицательная цена отклоняется",
			setupMocks: func(_ *RepoMock, _ *EventsMock) {},
			mutate: func(req *models.DummySubscription) {
				req.Price = decimal.NewFromInt(-10)
			},
			wantErr: ErrNonPositivePrice,
		},
		{
			name:       "некорректная дата начала",
			setupMocks: func(_ *RepoMock, _ *EventsMock) {},
			mutate: func(req *models.DummySubscription) {
				req.StartDate = "15-01-2026"
			},
			wantErr: ErrInvalidDate,
		},
		{
			name:       "несуществующая календарная дата",
			setupMocks: func(_ *RepoMock, _ *EventsMock) {},
			mutate: func(req *models.DummySubscription) {
				req.NextBillingDate = "2026-13-45"
			},
			wantErr: ErrInvalidDate,
		},
		{
			name:       "некорректная дата окончания",
			setupMocks: func(_ *RepoMock, _ *EventsMock) {},
			mutate: func(req *models.DummySubscription) {
				req.EndDate = "сегодня"
			},
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			events := new(EventsMock)
			tt.setupMocks(repo, events)

			svc := NewSubscriptionService(repo, events, newNoopLogger())

			req := validRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			id, err := svc.Create(context.Background(), testUserUID, req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			repo.AssertExpectations(t)
			events.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Create_ExplicitValues(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(entry models.Subscription) bool {
		return entry.BillingPeriod == models.BillingYearly &&
			entry.Status == models.StatusPaused &&
			entry.EndDate != nil &&
			entry.EndDate.Equal(time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC))
	})).Return(7, nil).Once()

	svc := NewSubscriptionService(repo, nil, newNoopLogger())

	req := validRequest()
	req.BillingPeriod = models.BillingYearly
	req.Status = models.StatusPaused
	req.EndDate = "2027-01-15"

	id, err := svc.Create(context.Background(), testUserUID, req)
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Read(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ReadSubscription", mock.Anything, 5, testUserUID).
		Return(&models.Subscription{ID: 5, Status: models.StatusActive}, nil).Once()

	svc := NewSubscriptionService(repo, nil, newNoopLogger())

	sub, err := svc.Read(context.Background(), 5, testUserUID)
	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Read_PausedNotActive(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ReadSubscription", mock.Anything, 5, testUserUID).
		Return(&models.Subscription{ID: 5, Status: models.StatusPaused}, nil).Once()

	svc := NewSubscriptionService(repo, nil, newNoopLogger())

	sub, err := svc.Read(context.Background(), 5, testUserUID)
	require.NoError(t, err)
	assert.False(t, sub.IsActive)
}

func TestSubscriptionService_Remove(t *testing.T) {
	t.Run("публикует событие при удалении", func(t *testing.T) {
		repo := new(RepoMock)
		events := new(EventsMock)
		repo.On("RemoveSubscription", mock.Anything, 5, testUserUID).Return(1, nil).Once()
		events.On("Publish", EventDeleted, Event{ID: 5, UserUID: testUserUID}).Return(nil).Once()

		svc := NewSubscriptionService(repo, events, newNoopLogger())

		count, err := svc.Remove(context.Background(), 5, testUserUID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		events.AssertExpectations(t)
	})

	t.Run("не публикует событие, если нечего удалять", func(t *testing.T) {
		repo := new(RepoMock)
		events := new(EventsMock)
		repo.On("RemoveSubscription", mock.Anything, 5, testUserUID).Return(0, nil).Once()

		svc := NewSubscriptionService(repo, events, newNoopLogger())

		count, err := svc.Remove(context.Background(), 5, testUserUID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestSubscriptionService_List(t *testing.T) {
	summary := &models.SubscriptionSummary{
		TotalSubscriptions:  2,
		ActiveSubscriptions: 1,
		TotalMonthlyCost:    decimal.NewFromInt(599),
	}

	t.Run("обычный пользователь видит только свои подписки", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListSubscriptions", mock.Anything, testUserUID, PageSize, 0).
			Return([]*models.Subscription{
				{ID: 1, Status: models.StatusActive},
				{ID: 2, Status: models.StatusCancelled},
			}, nil).Once()
		repo.On("CountSummary", mock.Anything, testUserUID).Return(summary, nil).Once()

		svc := NewSubscriptionService(repo, nil, newNoopLogger())

		entries, got, err := svc.List(context.Background(), testUserUID, "user", 1)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].IsActive)
		assert.False(t, entries[1].IsActive)
		assert.Equal(t, summary, got)
		repo.AssertExpectations(t)
	})

	t.Run("admin видит все подписки, но агрегаты свои", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListAllSubscriptions", mock.Anything, PageSize, PageSize).
			Return([]*models.Subscription{}, nil).Once()
		repo.On("CountSummary", mock.Anything, testUserUID).Return(summary, nil).Once()

		svc := NewSubscriptionService(repo, nil, newNoopLogger())

		_, _, err := svc.List(context.Background(), testUserUID, "admin", 2)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
