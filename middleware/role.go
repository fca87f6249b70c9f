package middleware

import (
	"net/http"

	"karigar/models"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects authenticated requests whose session role is not in the
// allowed set. Must run after JWTAuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		for _, role := range roles {
			if session.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}

// AdminOnly restricts a route group to admin accounts.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
