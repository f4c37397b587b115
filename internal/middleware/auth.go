package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Chun-Lin-Huang/class/internal/models"
	"github.com/Chun-Lin-Huang/class/internal/utils"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, 401, "Unauthorized, token missing or invalid")
			c.Abort()
			return
		}

		// Strip "Bearer " prefix if present
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.ErrorResponse(c, 401, "Unauthorized, token missing or invalid")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("userName", claims.UserName)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// AdminOnly gates session management and record editing endpoints.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			utils.ErrorResponse(c, 403, "Forbidden, admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
