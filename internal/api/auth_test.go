package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/service"
	"github.com/fanpulse/backend/internal/types"
)

type stubAuthService struct {
	identity *models.Identity
	token    string
	err      error
}

func (s *stubAuthService) Login(email, password string) (*models.Identity, string, error) {
	return s.identity, s.token, s.err
}

func (s *stubAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	return nil, assert.AnError
}

func authTestRouter(svc service.IAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", NewAuthHandler(svc).Login)
	return router
}

func TestLoginSuccess(t *testing.T) {
	router := authTestRouter(&stubAuthService{
		identity: &models.Identity{
			Email:       "travel@fanpulse.io",
			DisplayName: "Travel Team",
			Role:        models.RoleCategoryUser,
			Category:    "Travel",
		},
		token: "signed-token",
	})

	w := doRequest(router, http.MethodPost, "/login", types.LoginRequest{Email: "travel@fanpulse.io", Password: "travel2025"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "Travel", resp.User.Category)
	assert.Equal(t, models.RoleCategoryUser, resp.User.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := authTestRouter(&stubAuthService{err: service.ErrInvalidCredentials})

	w := doRequest(router, http.MethodPost, "/login", types.LoginRequest{Email: "x@fanpulse.io", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestLoginMissingFields(t *testing.T) {
	router := authTestRouter(&stubAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"x@fanpulse.io"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginOtherFailure(t *testing.T) {
	router := authTestRouter(&stubAuthService{err: assert.AnError})

	w := doRequest(router, http.MethodPost, "/login", types.LoginRequest{Email: "x@fanpulse.io", Password: "pw"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
