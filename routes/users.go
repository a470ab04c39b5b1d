package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradesman-handy-server/services"
)

// CreateUserRequest represents the registration request
type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	FirstName   string  `json:"firstName" binding:"required"`
	LastName    string  `json:"lastName" binding:"required"`
	Password    string  `json:"password" binding:"required,min=6"`
	IsTradesmen bool    `json:"isTradesmen"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRoutes registers user account routes
func RegisterUserRoutes(router *gin.RouterGroup) {
	router.POST("", createUser)
	router.POST("/login", loginUser)
	router.GET("/:id", getUser)
}

// createUser handles user registration
func createUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	user, err := userService.Register(services.RegisterInput{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		IsTradesmen: req.IsTradesmen,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// loginUser checks credentials and returns a token pair with the user
func loginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	user, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	pair, err := tokenService.Issue(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    pair.ExpiresIn,
		"user":         user,
	})
}

// getUser returns a user by id
func getUser(c *gin.Context) {
	user, err := userService.FindByID(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
