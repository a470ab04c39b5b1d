package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradesman-handy-server/middleware"
	"tradesman-handy-server/models"
	"tradesman-handy-server/services"
)

// CreateBookingRequest represents the booking creation request. The client id
// comes from the authenticated session, never from the body.
type CreateBookingRequest struct {
	Title                 string  `json:"title" binding:"required"`
	Description           string  `json:"description" binding:"required"`
	Source                string  `json:"source" binding:"required"`
	TradesmanID           string  `json:"tradesmanId" binding:"required,uuid"`
	Location              string  `json:"location"`
	ServiceType           *string `json:"serviceType"`
	HousingAssociationRef *string `json:"housingAssociationRef"`
	PreferredDate         *string `json:"preferredDate"` // ISO8601
}

// SubmitQuoteRequest represents the quote submission request
type SubmitQuoteRequest struct {
	QuotedPrice   float64 `json:"quotedPrice" binding:"required,gte=0"`
	ScheduledDate string  `json:"scheduledDate" binding:"required"` // ISO8601
	Notes         *string `json:"notes"`
}

// UpdateStatusRequest represents the generic status update request
type UpdateStatusRequest struct {
	Status      string   `json:"status" binding:"required"`
	QuotedPrice *float64 `json:"quotedPrice"`
}

// ScheduleBookingRequest represents the schedule update request
type ScheduleBookingRequest struct {
	ScheduledDate string `json:"scheduledDate" binding:"required"` // ISO8601
}

// RegisterBookingRoutes registers booking lifecycle routes. All of them
// require an authenticated user; quote/status/schedule additionally require
// the tradesman flag.
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("", createBooking)
	router.GET("/tradesman/:tradesmanId", getTradesmanBookings)
	router.GET("/client/:clientId", getClientBookings)
	router.GET("/:id", getBooking)

	router.PUT("/:id/cancel", cancelBooking)

	tradesman := router.Group("")
	tradesman.Use(middleware.RequireTradesman())
	{
		tradesman.PUT("/:id/quote", submitQuote)
		tradesman.PUT("/:id/status", updateBookingStatus)
		tradesman.PUT("/:id/accept", acceptBooking)
		tradesman.PUT("/:id/reject", rejectBooking)
		tradesman.PUT("/:id/start", startBooking)
		tradesman.PUT("/:id/complete", completeBooking)
		tradesman.PUT("/:id/schedule", scheduleBooking)
	}
}

// RegisterBookingAdminRoutes registers the table maintenance escape hatches.
// Development only; gated behind ENABLE_DEV_ROUTES.
func RegisterBookingAdminRoutes(router *gin.RouterGroup) {
	router.DELETE("/all", deleteAllBookings)
	router.POST("/reset-table", resetBookingsTable)
}

// createBooking creates a new pending booking for the acting client
func createBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	source, err := models.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	preferredDate, ok := parseOptionalDate(c, req.PreferredDate)
	if !ok {
		return
	}

	booking, err := bookingService.Create(services.CreateBookingInput{
		Title:                 req.Title,
		Description:           req.Description,
		Source:                source,
		TradesmanID:           req.TradesmanID,
		Location:              req.Location,
		ServiceType:           req.ServiceType,
		HousingAssociationRef: req.HousingAssociationRef,
		PreferredDate:         preferredDate,
	}, middleware.ActingUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// getTradesmanBookings lists bookings assigned to a tradesman, soonest
// scheduled first
func getTradesmanBookings(c *gin.Context) {
	bookings, err := bookingService.FindAllForTradesman(c.Param("tradesmanId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// getClientBookings lists bookings created by a client
func getClientBookings(c *gin.Context) {
	bookings, err := bookingService.FindAllForClient(c.Param("clientId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// getBooking returns one booking with client and tradesman summaries
func getBooking(c *gin.Context) {
	booking, err := bookingService.FindOne(c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// submitQuote records the acting tradesman's price and proposed date
func submitQuote(c *gin.Context) {
	var req SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": "scheduledDate must be an ISO8601 timestamp",
		})
		return
	}

	booking, err := bookingService.SubmitQuote(
		c.Param("id"),
		middleware.ActingUserID(c),
		req.QuotedPrice,
		&scheduledDate,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// updateBookingStatus applies an arbitrary (but lifecycle-legal) status change
func updateBookingStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	booking, err := bookingService.UpdateStatus(
		c.Param("id"),
		middleware.ActingUserID(c),
		status,
		req.QuotedPrice,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func acceptBooking(c *gin.Context) {
	applyStatus(c, models.BookingStatusAccepted)
}

func rejectBooking(c *gin.Context) {
	applyStatus(c, models.BookingStatusRejected)
}

func startBooking(c *gin.Context) {
	applyStatus(c, models.BookingStatusInProgress)
}

func completeBooking(c *gin.Context) {
	applyStatus(c, models.BookingStatusCompleted)
}

// applyStatus is the shared body of the accept/reject/start/complete verbs
func applyStatus(c *gin.Context, status models.BookingStatus) {
	booking, err := bookingService.UpdateStatus(
		c.Param("id"),
		middleware.ActingUserID(c),
		status,
		nil,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// cancelBooking lets the acting client cancel their own booking
func cancelBooking(c *gin.Context) {
	booking, err := bookingService.CancelByClient(c.Param("id"), middleware.ActingUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// scheduleBooking overwrites the scheduled visit date
func scheduleBooking(c *gin.Context) {
	var req ScheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	scheduledDate, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": "scheduledDate must be an ISO8601 timestamp",
		})
		return
	}

	booking, err := bookingService.UpdateSchedule(
		c.Param("id"),
		middleware.ActingUserID(c),
		&scheduledDate,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// deleteAllBookings wipes the bookings table
func deleteAllBookings(c *gin.Context) {
	if err := bookingService.DeleteAll(); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All bookings deleted"})
}

// resetBookingsTable drops and recreates the bookings table
func resetBookingsTable(c *gin.Context) {
	if err := bookingService.ResetTable(); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookings table reset"})
}

// parseOptionalDate parses an optional ISO8601 string, writing the 400
// response itself on failure
func parseOptionalDate(c *gin.Context, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": "date must be an ISO8601 timestamp",
		})
		return nil, false
	}
	return &t, true
}
