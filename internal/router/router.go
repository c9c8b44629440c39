package router

import (
	"github.com/gin-gonic/gin"
	"github.com/vmaksimov/appstore-backend/config"
	"github.com/vmaksimov/appstore-backend/internal/app/controller"
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/db"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
	"gorm.io/gorm"
)

type Router struct {
	authController    *controller.AuthController
	appController     *controller.AppController
	reviewController  *controller.ReviewController
	profileController *controller.ProfileController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	database          *gorm.DB
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	appController *controller.AppController,
	reviewController *controller.ReviewController,
	profileController *controller.ProfileController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	database *gorm.DB,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		appController:     appController,
		reviewController:  reviewController,
		profileController: profileController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		database:          database,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	adminOnly := []gin.HandlerFunc{
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(string(model.RoleAdmin)),
	}

	api := router.Group("/api")
	{
		api.GET("/health", r.health)

		auth := api.Group("/auth")
		{
			auth.POST("/vk", r.authController.VKLogin)
			auth.POST("/admin", r.authController.AdminLogin)
		}

		apps := api.Group("/apps")
		{
			apps.GET("", r.appController.ListApps)
			apps.GET("/:id", r.appController.GetApp)
			apps.GET("/:id/rating", r.reviewController.GetAppRating)
			apps.GET("/:id/reviews", r.reviewController.ListReviews)
			apps.POST("/:id/reviews",
				r.authMiddleware.OptionalAuthenticate(),
				r.reviewController.CreateReview,
			)

			apps.POST("/:id/favorite", r.authMiddleware.Authenticate(), r.profileController.AddFavorite)
			apps.DELETE("/:id/favorite", r.authMiddleware.Authenticate(), r.profileController.RemoveFavorite)
			apps.POST("/:id/download", r.authMiddleware.Authenticate(), r.profileController.RecordDownload)

			apps.POST("", append(adminOnly, r.appController.CreateApp)...)
			apps.PUT("/:id", append(adminOnly, r.appController.UpdateApp)...)
			apps.DELETE("/:id", append(adminOnly, r.appController.DeleteApp)...)
		}

		api.GET("/categories", r.appController.ListCategories)

		reviews := api.Group("/reviews")
		{
			reviews.POST("/:id/like", r.reviewController.LikeReview)
			reviews.PUT("/:id", r.authMiddleware.Authenticate(), r.reviewController.UpdateReview)
			reviews.DELETE("/:id", r.authMiddleware.Authenticate(), r.reviewController.DeleteReview)
		}

		profile := api.Group("/profile")
		profile.Use(r.authMiddleware.Authenticate())
		{
			profile.GET("", r.profileController.GetProfile)
			profile.GET("/downloads", r.profileController.ListDownloads)
			profile.GET("/favorites", r.profileController.ListFavorites)
			profile.GET("/reviews", r.profileController.ListReviews)
		}

		upload := api.Group("/upload")
		upload.Use(adminOnly...)
		{
			upload.POST("/image", r.uploadController.PresignImageUpload)
		}
	}

	return router
}

// health reports service liveness plus database connectivity.
func (r *Router) health(c *gin.Context) {
	database := "connected"
	status := "healthy"
	if err := db.Ping(r.database); err != nil {
		database = "disconnected"
		status = "degraded"
	}

	c.JSON(200, gin.H{
		"status":   status,
		"database": database,
	})
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
