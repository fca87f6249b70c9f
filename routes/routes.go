package routes

import (
	"net/http"
	"time"

	"karigar/handlers"
	"karigar/middleware"
	"karigar/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers signup and signin.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignupHandler)
		api.POST("/signin", hb.SigninHandler)
	}
}

// RegisterUserRoutes registers profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/me", hb.GetMeHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.POST("/me/picture", hb.UploadProfilePictureHandler)
	}
}

// RegisterProviderRoutes registers discovery and listing management.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		// Public discovery endpoints.
		api.GET("/search", hb.SearchProvidersHandler)
		api.GET("/categories", hb.ListCategoriesHandler)
		api.GET("/:id", hb.GetProviderProfileHandler)
		api.GET("/:id/reviews", hb.ListProviderReviewsHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.PUT("/me/business", hb.UpdateBusinessInfoHandler)

		services := protected.Group("/me/services")
		services.Use(middleware.RequireRole(models.RoleProvider))
		services.GET("", hb.ListOwnServicesHandler)
		services.POST("", hb.CreateServiceHandler)
		services.PUT("/:serviceId", hb.UpdateServiceHandler)
		services.DELETE("/:serviceId", hb.DeactivateServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/availability", hb.CheckAvailabilityHandler)
		api.POST("", hb.CreateBookingHandler)
		api.GET("", hb.ListBookingsHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PATCH("/:id/status", hb.UpdateBookingStatusHandler)
		api.POST("/:id/reschedule", hb.RescheduleBookingHandler)
		api.GET("/:id/review", hb.GetBookingReviewHandler)
	}
}

// RegisterReviewRoutes registers review submission and editing.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.SubmitReviewHandler)
		api.PATCH("/:id", hb.UpdateReviewHandler)
		api.DELETE("/:id", hb.DeleteReviewHandler)
	}
}

// RegisterAdminRoutes registers moderation and analytics endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnly())
	{
		api.GET("/dashboard", hb.AdminDashboardHandler)
		api.GET("/users", hb.AdminListUsersHandler)
		api.PATCH("/providers/:id/active", hb.AdminSetProviderActiveHandler)
		api.PATCH("/providers/:id/verification", hb.AdminSetVerificationHandler)
		api.GET("/reviews", hb.AdminListReviewsHandler)
		api.POST("/reviews/:id/hide", hb.AdminHideReviewHandler)
		api.POST("/reconcile-ratings", hb.AdminReconcileHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Karigar"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
