package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tradesman-handy-server/config"
	"tradesman-handy-server/database"
	"tradesman-handy-server/jobs"
	"tradesman-handy-server/middleware"
	"tradesman-handy-server/routes"
)

func main() {
	seed := flag.Bool("seed", false, "populate the database with demo users and bookings, then exit")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if *seed {
		if err := seedDemoData(); err != nil {
			log.Fatal("Failed to seed demo data:", err)
		}
		return
	}

	router := buildRouter()

	// Start background jobs
	cleanupJob := jobs.NewCleanupJob(24 * time.Hour)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// buildRouter assembles the middleware stack and the API route tree
func buildRouter() *gin.Engine {
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Tradesman Handy server is running",
			"time":    time.Now().UTC(),
		})
	})

	routes.Init(database.DB)

	api := router.Group("/api/v1")
	{
		// User routes (registration and login are public, rate limited)
		userRoutes := api.Group("/users")
		userRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterUserRoutes(userRoutes)

		// Token lifecycle routes
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Booking routes require an authenticated session
		bookingRoutes := api.Group("/bookings")
		bookingRoutes.Use(middleware.AuthMiddleware())
		routes.RegisterBookingRoutes(bookingRoutes)

		// Table maintenance escape hatches, never registered in production
		if config.AppConfig.Server.EnableDevRoutes {
			log.Println("WARNING: dev-only booking maintenance routes are enabled")
			devRoutes := api.Group("/bookings")
			routes.RegisterBookingAdminRoutes(devRoutes)
		}
	}

	return router
}
