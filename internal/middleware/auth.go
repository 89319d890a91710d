package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/types"
)

// identityKey is the gin context key the authenticated identity lives
// under.
const identityKey = "identity"

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that validates JWT tokens and stores
// the resolved identity in the request context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(identityKey, &models.Identity{
			Email:       claims.Email,
			DisplayName: claims.DisplayName,
			Role:        claims.Role,
			Category:    claims.Category,
		})
		c.Next()
	}
}

// IdentityFromContext returns the authenticated identity, or nil when the
// request never passed the auth middleware.
func IdentityFromContext(c *gin.Context) *models.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := v.(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}
