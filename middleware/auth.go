package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradesman-handy-server/database"
	"tradesman-handy-server/models"
	"tradesman-handy-server/utils"
)

// AuthMiddleware validates the bearer token and sets the acting user on the
// request context. Handlers read the identity from here instead of trusting
// ids in the request body.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authorization header required",
				"message": "Please provide a valid token",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token format",
				"message": "Token must be in format: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"message": "Token is invalid or expired",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User not found",
				"message": "User associated with token not found",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "User inactive",
				"message": "User account is deactivated",
			})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("is_tradesmen", user.IsTradesmen)

		c.Next()
	}
}

// RequireTradesman rejects requests from users without the tradesman flag.
// Used on quote/status/schedule endpoints.
func RequireTradesman() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("is_tradesmen") {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "This action requires a tradesman account",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActingUserID returns the authenticated user's id from the request context
func ActingUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
