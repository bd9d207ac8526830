package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mdarmaan6204/nutri-tracker/services"
)

// SessionCookie is the cookie carrying the session token. The cookie
// takes precedence over the Authorization header when both are present.
const SessionCookie = "token"

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
			raw = v
		}
		if raw == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				raw = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Next()
	}
}

// UserID extracts the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
