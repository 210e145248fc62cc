package middlewares

import (
	"net/http"
	"strings"

	"vibecode/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer JWT and sets the caller's identity in
// the gin context under "userId"
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing Authorization token"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization token format"})
			c.Abort()
			return
		}
		token := parts[1]

		valid, email, err := utils.ValidateTokenAndFetchEmail(token)
		if err != nil || !valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userId", email)
		c.Next()
	}
}
