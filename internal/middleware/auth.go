package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"authserver/internal/models"
	"authserver/internal/token"
)

const claimsContextKey = "claims"

// Auth creates a Gin middleware that validates the bearer token on the
// Authorization header and mounts the verified claims into the request
// context for downstream guards and handlers.
func Auth(issuer *token.Issuer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			return
		}

		claims, err := issuer.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				return
			}
			logger.Warn("Rejected invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set("username", claims.Subject)
		c.Next()
	}
}

// ClaimsFromContext returns the claims mounted by Auth, or nil when the
// request carried none.
func ClaimsFromContext(c *gin.Context) *models.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*models.Claims)
	if !ok {
		return nil
	}
	return claims
}

// SetClaims mounts claims into the request context the same way Auth does.
// Intended for tests that exercise guards without a signed token.
func SetClaims(c *gin.Context, claims *models.Claims) {
	c.Set(claimsContextKey, claims)
}
