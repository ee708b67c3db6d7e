package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/utils"
)

// AuthCookieName is the HTTP-only cookie carrying the session token.
const AuthCookieName = "auth_token"

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

// AuthMiddleware validates the session cookie and stores the user ID in
// the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: No token provided"})
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID set by AuthMiddleware.
func UserID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	s, _ := id.(string)
	return s
}
