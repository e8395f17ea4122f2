package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequirePermissions guards a route behind a static permission requirement.
// Each argument may itself be a whitespace-delimited list ("read write"),
// mirroring the shapes the permissions claim supports. Every required
// permission must appear among the caller's, in any order. All failure modes
// answer 400; only the message distinguishes them.
func RequirePermissions(required ...string) gin.HandlerFunc {
	requiredPerms := normalizePermissions(required)

	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Permissions == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing permissions object in token"})
			return
		}
		if !claims.Permissions.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Broken permissions object in token"})
			return
		}

		granted := claims.Permissions.Values()
		for _, req := range requiredPerms {
			if !slices.Contains(granted, req) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Insufficient permissions"})
				return
			}
		}
		c.Next()
	}
}

func normalizePermissions(perms []string) []string {
	var out []string
	for _, p := range perms {
		out = append(out, strings.Fields(p)...)
	}
	return out
}
