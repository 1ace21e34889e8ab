package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/memorylane/internal/session"
	"github.com/thereayou/memorylane/pkg/auth"
)

const (
	UserIDKey = "userID"
	TokenKey  = "sessionToken"
)

// AuthMiddleware accepts a bearer token or the session cookie.
func AuthMiddleware(jwtManager *auth.JWTManager, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractToken(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		authenticate(c, jwtManager, revoker, token)
	}
}

// WSAuthMiddleware additionally accepts ?token= since browsers cannot set
// headers on a websocket handshake.
func WSAuthMiddleware(jwtManager *auth.JWTManager, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			var err error
			if token, err = auth.ExtractToken(c.Request); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
				return
			}
		}
		authenticate(c, jwtManager, revoker, token)
	}
}

func authenticate(c *gin.Context, jwtManager *auth.JWTManager, revoker session.Revoker, token string) {
	revoked, err := revoker.IsRevoked(c.Request.Context(), token)
	if err != nil {
		c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not check session"})
		return
	}
	if revoked {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is revoked"})
		return
	}

	userID, _, err := jwtManager.UserID(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(UserIDKey, userID)
	c.Set(TokenKey, token)
	c.Next()
}

// UserID returns the authenticated user. It must only be called behind
// AuthMiddleware.
func UserID(c *gin.Context) int64 {
	return c.MustGet(UserIDKey).(int64)
}
