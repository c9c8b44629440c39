package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vmaksimov/appstore-backend/config"
	"github.com/vmaksimov/appstore-backend/internal/app/controller"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/internal/app/service"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
	"github.com/vmaksimov/appstore-backend/internal/router"
	"github.com/vmaksimov/appstore-backend/internal/storage"
	"github.com/vmaksimov/appstore-backend/pkg/logger"
	"github.com/vmaksimov/appstore-backend/pkg/vk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting App Store Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// VK client is optional in development; auth endpoints report the
	// misconfiguration instead of the process refusing to start.
	var vkExchanger service.VKExchanger
	vkClient, err := vk.NewClient(vk.Config{
		ClientID:     cfg.VK.ClientID,
		ClientSecret: cfg.VK.ClientSecret,
		APIVersion:   cfg.VK.APIVersion,
	})
	if err != nil {
		logger.Warn("VK client not configured, social login disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		vkExchanger = vkClient
	}

	// Repositories
	userRepo := repository.NewUserRepository(database)
	appRepo := repository.NewAppRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	ratingRepo := repository.NewRatingRepository(database)
	favoriteRepo := repository.NewFavoriteRepository(database)
	downloadRepo := repository.NewDownloadRepository(database)

	// Services
	authService := service.NewAuthService(userRepo, vkExchanger, cfg.JWT, cfg.Admin)
	catalogService := service.NewCatalogService(appRepo, ratingRepo)
	reviewService := service.NewReviewService(database, reviewRepo, ratingRepo, appRepo, userRepo)
	profileService := service.NewProfileService(userRepo, appRepo, reviewRepo, favoriteRepo, downloadRepo)

	if err := authService.EnsureAdmin(); err != nil {
		logger.Fatal("Failed to bootstrap admin account", err)
	}

	s3Storage := storage.NewS3Storage(cfg.S3)

	// Controllers
	authController := controller.NewAuthController(authService)
	appController := controller.NewAppController(catalogService)
	reviewController := controller.NewReviewController(reviewService)
	profileController := controller.NewProfileController(profileService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		appController,
		reviewController,
		profileController,
		uploadController,
		authMiddleware,
		database,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
