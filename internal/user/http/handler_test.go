package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

const (
	adminID = "11111111-1111-1111-1111-111111111111"
	deskID  = "22222222-2222-2222-2222-222222222222"
)

// fakeService serves two fixed accounts with the password "password123".
type fakeService struct {
	user.Service
	registered []user.RegisterRequest
}

func (f *fakeService) accounts() map[string]*user.User {
	return map[string]*user.User{
		"admin@hotel.test": {ID: adminID, Email: "admin@hotel.test", Role: user.RoleAdmin, IsActive: true},
		"desk@hotel.test":  {ID: deskID, Email: "desk@hotel.test", Role: user.RoleReceptionist, IsActive: true},
		"gone@hotel.test":  {ID: "33333333-3333-3333-3333-333333333333", Email: "gone@hotel.test", IsActive: false},
	}
}

func (f *fakeService) Login(_ context.Context, email, password string) (*user.User, error) {
	u, ok := f.accounts()[email]
	if !ok || password != "password123" {
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrInactiveUser
	}
	return u, nil
}

func (f *fakeService) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range f.accounts() {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeService) Register(_ context.Context, req user.RegisterRequest) (*user.User, error) {
	f.registered = append(f.registered, req)
	return &user.User{ID: "44444444-4444-4444-4444-444444444444", Email: req.Email, Role: req.Role, IsActive: true}, nil
}

func newRouter(svc user.Service, jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	RegisterRoutes(v1, NewHandler(svc, jwtManager), auth.AuthRequired(jwtManager), auth.RequireRole(string(user.RoleAdmin)))
	return r
}

func executeRequest(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email string) string {
	w := executeRequest(r, http.MethodPost, "/v1/auth/login", LoginRequest{Email: email, Password: "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestLoginAndMe(t *testing.T) {
	r := newRouter(&fakeService{}, auth.NewJWTManager("test-secret", 15*time.Minute))

	token := login(t, r, "desk@hotel.test")

	w := executeRequest(r, http.MethodGet, "/v1/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, deskID, resp.User.ID)
	assert.Equal(t, "receptionist", resp.User.Role)

	w = executeRequest(r, http.MethodGet, "/v1/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailures(t *testing.T) {
	r := newRouter(&fakeService{}, auth.NewJWTManager("test-secret", 15*time.Minute))

	tests := []struct {
		name     string
		body     any
		wantCode int
	}{
		{"wrong password", LoginRequest{Email: "desk@hotel.test", Password: "nope"}, http.StatusUnauthorized},
		{"inactive", LoginRequest{Email: "gone@hotel.test", Password: "password123"}, http.StatusUnauthorized},
		{"malformed", gin.H{"email": "not-an-email"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeRequest(r, http.MethodPost, "/v1/auth/login", tt.body, "")
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "invalid email or password")
			}
		})
	}
}

func TestRegisterRequiresAdmin(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc, auth.NewJWTManager("test-secret", 15*time.Minute))
	body := RegisterRequest{Email: "new@hotel.test", Password: "password123", DisplayName: "New", Role: "receptionist"}

	w := executeRequest(r, http.MethodPost, "/v1/auth/register", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = executeRequest(r, http.MethodPost, "/v1/auth/register", body, login(t, r, "desk@hotel.test"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.registered)

	w = executeRequest(r, http.MethodPost, "/v1/auth/register", body, login(t, r, "admin@hotel.test"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, svc.registered, 1)
	assert.Equal(t, user.RoleReceptionist, svc.registered[0].Role)
}
