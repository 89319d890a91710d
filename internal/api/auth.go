package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fanpulse/backend/internal/middleware"
	"github.com/fanpulse/backend/internal/service"
	"github.com/fanpulse/backend/internal/types"
)

// AuthHandler handles login and identity introspection.
type AuthHandler struct {
	authService service.IAuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a dashboard user and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{
		Token: token,
		User: types.TokenClaims{
			Email:       identity.Email,
			DisplayName: identity.DisplayName,
			Role:        identity.Role,
			Category:    identity.Category,
		},
	})
}

// Me returns the caller's identity claims.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, types.TokenClaims{
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Role:        identity.Role,
		Category:    identity.Category,
	})
}
