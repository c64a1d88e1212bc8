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
	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
)

const guestID = "55555555-5555-5555-5555-555555555555"

type fakeService struct {
	guest.Service
	created []guest.CreateRequest
	deleted []string
}

func (f *fakeService) Create(_ context.Context, req guest.CreateRequest) (*guest.Guest, error) {
	f.created = append(f.created, req)
	return &guest.Guest{ID: guestID, FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone, BirthDate: req.BirthDate}, nil
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newRouter(svc guest.Service, jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.AuthRequired(jwtManager), auth.RequireRole("admin"))
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

func TestCreateGuest(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	svc := &fakeService{}
	r := newRouter(svc, jwtManager)

	desk, err := jwtManager.GenerateAccessToken("22222222-2222-2222-2222-222222222222", "desk@hotel.test", "receptionist")
	require.NoError(t, err)

	body := gin.H{"first_name": "Ana", "last_name": "Ruiz", "phone": "600", "birth_date": "1990-05-04"}

	w := executeRequest(r, http.MethodPost, "/v1/guests", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = executeRequest(r, http.MethodPost, "/v1/guests", body, desk)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp GuestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, guestID, resp.ID)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, "1990-05-04", *resp.BirthDate)
	assert.Nil(t, resp.Email)

	tests := []struct {
		name string
		body gin.H
	}{
		{"bad birth date", gin.H{"first_name": "Ana", "last_name": "Ruiz", "phone": "600", "birth_date": "04/05/1990"}},
		{"bad email", gin.H{"first_name": "Ana", "last_name": "Ruiz", "phone": "600", "email": "not-an-email"}},
		{"missing phone", gin.H{"first_name": "Ana", "last_name": "Ruiz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeRequest(r, http.MethodPost, "/v1/guests", tt.body, desk)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Len(t, svc.created, 1)
}

func TestDeleteGuestRequiresAdmin(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	svc := &fakeService{}
	r := newRouter(svc, jwtManager)

	desk, err := jwtManager.GenerateAccessToken("22222222-2222-2222-2222-222222222222", "desk@hotel.test", "receptionist")
	require.NoError(t, err)
	admin, err := jwtManager.GenerateAccessToken("11111111-1111-1111-1111-111111111111", "admin@hotel.test", "admin")
	require.NoError(t, err)

	w := executeRequest(r, http.MethodDelete, "/v1/guests/"+guestID, nil, desk)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.deleted)

	w = executeRequest(r, http.MethodDelete, "/v1/guests/"+guestID, nil, admin)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{guestID}, svc.deleted)
}
