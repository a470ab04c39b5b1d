package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RefreshRequest carries the refresh token presented for rotation or revocation
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterAuthRoutes registers token lifecycle routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/refresh", refreshToken)
	router.POST("/logout", logout)
}

// refreshToken rotates a refresh token for a new token pair
func refreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	pair, err := tokenService.Rotate(req.RefreshToken)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// logout revokes a refresh token
func logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if err := tokenService.Revoke(req.RefreshToken); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
