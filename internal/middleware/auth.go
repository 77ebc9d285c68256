package middleware

import (
	"fmt"
	"strings"

	"cartscout-backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware extracts user identity from a bearer token when one
// is present and valid; otherwise the caller proceeds as a guest. Every cart
// and comparison endpoint works for both.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// IsGuest reports whether the caller has no validated user identity.
func IsGuest(c *gin.Context) bool {
	_, exists := c.Get("user_id")
	return !exists
}

// OwnerKey returns the key the caller's cart lives under upstream: the user
// id for signed-in callers, the session id for guests. A signed-in user keeps
// one cart across devices; a guest's cart is scoped to the browser session.
func OwnerKey(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		return fmt.Sprintf("user:%d", userID.(int))
	}
	if sessionID := GetSessionID(c); sessionID != "" {
		return "session:" + sessionID
	}
	return ""
}
