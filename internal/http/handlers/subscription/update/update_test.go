package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/66emil/SubscribeTrack/internal/http/middlewarectx"
	"github.com/66emil/SubscribeTrack/internal/models"
	subsvc "github.com/66emil/SubscribeTrack/internal/services/subscription"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, req models.DummySubscription, id int, userUID string) (int, error) {
	args := m.Called(ctx, req, id, userUID)
	return args.Int(0), args.Error(1)
}

const testUserUID = "11111111-1111-1111-1111-111111111111"

const validBody = `{
	"company_id": 3,
	"plan_name": "Премиум",
	"price": "599.99",
	"start_date": "2026-01-15",
	"next_billing_date": "2026-02-15"
}`

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		body           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное обновление",
			url:      "/subscriptions/123",
			body:     validBody,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.Anything, 123, testUserUID).Return(1, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"updated_count":1`,
		},
		{
			name:           "некорректный json",
			url:            "/subscriptions/123",
			body:           `{not json`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:     "некорректная дата начала",
			url:      "/subscriptions/123",
			body:     strings.Replace(validBody, "2026-01-15", "2024-13-45", 1),
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.Anything, 123, testUserUID).
					Return(0, subsvc.ErrInvalidDate)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `date must be in 2006-01-02 format`,
		},
		{
			name:     "чужая или несуществующая подписка",
			url:      "/subscriptions/777",
			body:     validBody,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, mock.Anything, 777, testUserUID).Return(0, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `subscription not found`,
		},
		{
			name:           "нет пользователя в контексте",
			url:            "/subscriptions/123",
			body:           validBody,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, tt.url, strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/subscriptions/"))
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, testUserUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
