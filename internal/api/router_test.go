package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
)

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, ,https://b.example "))
	assert.Nil(t, splitOrigins(""))
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		timeout      time.Duration
		wantDeadline bool
	}{
		{"bounded", time.Second, true},
		{"disabled", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestTimeout(tt.timeout))

			var ctx context.Context
			r.GET("/ping", func(c *gin.Context) {
				ctx = c.Request.Context()
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusNoContent, w.Code)
			_, ok := ctx.Deadline()
			assert.Equal(t, tt.wantDeadline, ok)
		})
	}
}

func TestNewRouterProtectsStaffRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	r := NewRouter(Config{JWTManager: jwtManager, RequestTimeout: time.Second})

	tests := []struct {
		method, path string
		token        func() string
		wantCode     int
	}{
		{http.MethodGet, "/v1/reservations", func() string { return "" }, http.StatusUnauthorized},
		{http.MethodGet, "/v1/availability", func() string { return "" }, http.StatusUnauthorized},
		{http.MethodPost, "/v1/rooms", func() string {
			token, _ := jwtManager.GenerateAccessToken("22222222-2222-2222-2222-222222222222", "desk@hotel.test", "receptionist")
			return token
		}, http.StatusForbidden},
		{http.MethodPost, "/v1/price-rules", func() string { return "not-a-token" }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			if token := tt.token(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
