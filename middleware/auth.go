package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "karigar/database/repository/user"
	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// JWTAuthMiddleware authenticates requests with a Bearer token. Verified
// tokens are cached in Redis by their hash so repeat requests skip the
// account lookup; a cache miss falls back to the store to confirm the account
// still exists.
func JWTAuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		session, err := utils.ExtractSessionFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := context.Background()
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + session.ID

		authCache := utils.GetAuthCacheClient()
		if cachedHash, err := authCache.Get(ctx, cacheKey).Result(); err == nil && cachedHash == computedHash {
			_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
			c.Set(sessionKey, session)
			c.Next()
			return
		}

		u, err := users.GetByID(session.ID)
		if err != nil || u == nil || u.Role != session.Role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer valid"})
			return
		}

		if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Sugar().Warnf("failed to cache auth token: %v", err)
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the authenticated session set by
// JWTAuthMiddleware.
func SessionFromContext(c *gin.Context) (models.SessionUser, bool) {
	val, ok := c.Get(sessionKey)
	if !ok {
		return models.SessionUser{}, false
	}
	session, ok := val.(models.SessionUser)
	return session, ok
}
