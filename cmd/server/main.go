package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/skylane/property-listing-api/internal/config"
	"github.com/skylane/property-listing-api/internal/database"
	"github.com/skylane/property-listing-api/internal/handlers"
	"github.com/skylane/property-listing-api/internal/middleware"
	"github.com/skylane/property-listing-api/internal/repository"
	"github.com/skylane/property-listing-api/internal/services"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Initialize services
	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, hasher)
	listingService := services.NewListingService(listingRepo)
	bookingService := services.NewBookingService(bookingRepo, listingRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	userHandler := handlers.NewUserHandler(authService, listingService)
	listingHandler := handlers.NewListingHandler(listingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Property Listing API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/signin", authHandler.SignIn)
			auth.POST("/google", authHandler.Google)
			auth.POST("/signout", authHandler.SignOut)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		// User routes
		users := api.Group("/users")
		{
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", requireAuth, middleware.RequireSelf(), userHandler.UpdateUser)
			users.DELETE("/:id", requireAuth, middleware.RequireSelf(), userHandler.DeleteUser)
			users.GET("/:id/listings", requireAuth, middleware.RequireSelf(), userHandler.GetUserListings)
		}

		// Listing routes
		listings := api.Group("/listings")
		{
			listings.GET("", listingHandler.SearchListings)
			listings.GET("/saved", requireAuth, listingHandler.GetSavedListings)
			listings.GET("/:id", listingHandler.GetListing)
			listings.POST("", requireAuth, listingHandler.CreateListing)
			listings.PUT("/:id", requireAuth, listingHandler.UpdateListing)
			listings.DELETE("/:id", requireAuth, listingHandler.DeleteListing)
			listings.POST("/:id/save", requireAuth, listingHandler.SaveListing)
			listings.DELETE("/:id/save", requireAuth, listingHandler.UnsaveListing)
		}

		// Booking routes (all protected)
		bookings := api.Group("/bookings")
		bookings.Use(requireAuth)
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.POST("/:id/resolve", bookingHandler.ResolveBooking)
			bookings.GET("/my", bookingHandler.GetMyBookings)
			bookings.GET("/received", bookingHandler.GetReceivedBookings)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
