package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func authTestRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		c.JSON(http.StatusOK, IdentityFromContext(c))
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := authTestRouter(&stubValidator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := authTestRouter(&stubValidator{})

	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := authTestRouter(&stubValidator{err: errors.New("expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator := &stubValidator{claims: &types.TokenClaims{
		Email:       "travel@fanpulse.io",
		DisplayName: "Travel Team",
		Role:        models.RoleCategoryUser,
		Category:    "Travel",
	}}

	var captured *models.Identity
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		captured = IdentityFromContext(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "travel@fanpulse.io", captured.Email)
	assert.Equal(t, "Travel", captured.Category)
	assert.Equal(t, models.RoleCategoryUser, captured.Role)
}

func TestIdentityFromContextWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, IdentityFromContext(c))
}
