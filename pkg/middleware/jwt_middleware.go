package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"voya/pkg/utils"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// OptionalAuthMiddleware scopes the request to the bearer token's account.
// Requests without an Authorization header continue anonymously; a header
// that does not carry a valid token is rejected.
func OptionalAuthMiddleware(issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := issuer.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// CurrentUser returns the authenticated account id, or "" for anonymous callers.
func CurrentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
