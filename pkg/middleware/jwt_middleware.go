package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolmeal/pkg/utils"
)

const (
	UserIDKey    = "user_id"
	RoleKey      = "Role"
	SessionIDKey = "session_id"
)

func JWTAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// The token ID identifies the login session
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Set(SessionIDKey, claims.ID)
		c.Next()
	}
}

// RoleMiddleware lets the request through when the caller has any of roles.
func RoleMiddleware(roles ...string) gin.HandlerFunc {

	return func(c *gin.Context) {
		role := c.GetString(RoleKey)

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}
