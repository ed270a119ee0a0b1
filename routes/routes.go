package routes

import (
	"MediCoreHMS/cache"
	"MediCoreHMS/config"
	"MediCoreHMS/controllers"
	"MediCoreHMS/handlers"
	"MediCoreHMS/middlewares"
	"MediCoreHMS/repositories"
	"MediCoreHMS/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB, locker services.Locker) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	patientRepo := repositories.NewPatientRepository(db, cache)
	hospitalRepo := repositories.NewHospitalRepository(db)
	recordRepo := repositories.NewRecordRepository(db)
	userRepo := repositories.NewUserRepository(db, cache)

	lookupService := services.NewPatientLookupService(patientRepo)
	patientService := services.NewPatientService(patientRepo, lookupService, locker)
	mergeService := services.NewMergeService(patientRepo, recordRepo)
	claimService := services.NewClaimService(patientRepo)
	emergencyService := services.NewEmergencyService(patientService, recordRepo)
	hospitalService := services.NewHospitalService(hospitalRepo)
	userService := services.NewUserService(userRepo, locker)

	patientHandler := handlers.NewPatientHandler(patientService, lookupService)
	mergeHandler := handlers.NewMergeHandler(mergeService)
	claimHandler := handlers.NewClaimHandler(claimService)
	emergencyHandler := handlers.NewEmergencyHandler(emergencyService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalService)
	authHandler := handlers.NewAuthHandler(userService, cache)

	// Register routes
	controllers.SetupPatientRoutes(
		router,
		hospitalHandler,
		patientHandler,
		mergeHandler,
		claimHandler,
		emergencyHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
