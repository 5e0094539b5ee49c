package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"innkeep/config"
	"innkeep/infras/otel/mocks"
	cacheMocks "innkeep/shared/cache/mocks"
	"innkeep/shared/constant"
	"innkeep/transport/http/middleware"
)

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	tests := []struct {
		name          string
		enable        bool
		setupMock     func()
		wantStatus    int
		wantRemaining string
	}{
		{
			name:       "disabled",
			setupMock:  func() {},
			wantStatus: http.StatusOK,
		},
		{
			name:   "within window",
			enable: true,
			setupMock: func() {
				redisCache.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.7:guest-1", 30*time.Second).Return(int64(2), nil)
			},
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:   "over the limit",
			enable: true,
			setupMock: func() {
				redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(4), nil)
			},
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "redis down lets request through",
			enable: true,
			setupMock: func() {
				redisCache.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("dial tcp"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 30

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache)
			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			request := httptest.NewRequest(http.MethodGet, "/v1/rooms/available", nil)
			request.RemoteAddr = "10.0.0.7:52314"
			request.Header.Set(constant.RequestHeaderHolderID, "guest-1")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantRemaining, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
