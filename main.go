package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"karigar/config"
	"karigar/cron"
	"karigar/database"
	bookingRepoPkg "karigar/database/repository/booking"
	providerRepoPkg "karigar/database/repository/provider"
	reviewRepoPkg "karigar/database/repository/review"
	serviceRepoPkg "karigar/database/repository/service"
	userRepoPkg "karigar/database/repository/user"
	"karigar/handlers"
	"karigar/routes"
	adminSvc "karigar/services/admin"
	bookingSvc "karigar/services/booking"
	"karigar/services/notification"
	providerSvc "karigar/services/provider"
	reviewSvc "karigar/services/review"
	storageSvc "karigar/services/storage"
	"karigar/services/tasks"
	userSvc "karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	providerRepo := providerRepoPkg.NewMongoProviderInfoRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	categoryRepo := serviceRepoPkg.NewMongoCategoryRepo()

	if err := categoryRepo.EnsureDefaults(); err != nil {
		logger.Sugar().Warnf("main: failed to seed categories: %v", err)
	}

	// services.
	userService := &userSvc.DefaultUserService{
		Repo:      userRepo,
		Providers: providerRepo,
	}

	reviewService := &reviewSvc.DefaultReviewService{
		Repo:     reviewRepo,
		Bookings: bookingRepo,
	}

	bookingService := &bookingSvc.DefaultBookingService{
		Repo:      bookingRepo,
		Services:  serviceRepo,
		Providers: providerRepo,
		Reminders: tasks.NewAsynqReminderScheduler(),
	}

	providerService := &providerSvc.DefaultProviderService{
		Providers:  providerRepo,
		Users:      userRepo,
		Services:   serviceRepo,
		Categories: categoryRepo,
		Reviews:    reviewService,
	}

	adminService := &adminSvc.DefaultAdminService{
		Users:     userRepo,
		Providers: providerRepo,
		Bookings:  bookingRepo,
		Reviews:   reviewRepo,
		Services:  serviceRepo,
		Ratings:   reviewService,
	}

	// Image storage is optional; the picture upload endpoint reports it
	// unavailable when the URL is missing.
	var storageService storageSvc.StorageService
	if config.AppConfig.CloudinaryURL != "" {
		svc, err := storageSvc.NewCloudinaryStorageService()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
		}
		storageService = svc
	}

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:  userRepo,
		Users:     userService,
		Bookings:  bookingService,
		Reviews:   reviewService,
		Providers: providerService,
		Admin:     adminService,
		Storage:   storageService,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitReminderWorker(notification.LogNotificationService{})
	cron.InitAggregateReconciler(adminService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
