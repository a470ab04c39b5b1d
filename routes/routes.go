package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tradesman-handy-server/services"
)

var (
	bookingService *services.BookingService
	userService    *services.UserService
	tokenService   *services.TokenService
)

// Init wires the route handlers to their services. Must be called before any
// Register* function.
func Init(db *gorm.DB) {
	bookingService = services.NewBookingService(db)
	userService = services.NewUserService(db)
	tokenService = services.NewTokenService(db)
}

// handleServiceError maps service failures onto HTTP responses. Unexpected
// errors are logged server-side and surfaced as a generic internal error so
// schema and query detail never reaches clients.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTradesmanNotFound),
		errors.Is(err, services.ErrTokenNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrNotTradesman):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrStaleBooking),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Conflict",
			"message": err.Error(),
		})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": err.Error(),
		})
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Something went wrong. Please try again later.",
		})
	}
}
