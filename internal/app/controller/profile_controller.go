package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vmaksimov/appstore-backend/internal/app/service"
	appErrors "github.com/vmaksimov/appstore-backend/internal/errors"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile handles GET /api/profile
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := ctrl.profileService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			appErrors.NotFound(c, appErrors.UserNotFound, "User not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ListDownloads handles GET /api/profile/downloads
func (ctrl *ProfileController) ListDownloads(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	downloads, err := ctrl.profileService.ListDownloads(userID)
	if err != nil {
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloads": downloads})
}

// ListFavorites handles GET /api/profile/favorites
func (ctrl *ProfileController) ListFavorites(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	favorites, err := ctrl.profileService.ListFavorites(userID)
	if err != nil {
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ListReviews handles GET /api/profile/reviews
func (ctrl *ProfileController) ListReviews(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	reviews, err := ctrl.profileService.ListReviews(userID)
	if err != nil {
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// AddFavorite handles POST /api/apps/:id/favorite
func (ctrl *ProfileController) AddFavorite(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.profileService.AddFavorite(userID, appID); err != nil {
		if errors.Is(err, service.ErrAppNotFound) {
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

// RemoveFavorite handles DELETE /api/apps/:id/favorite
func (ctrl *ProfileController) RemoveFavorite(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.profileService.RemoveFavorite(userID, appID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			appErrors.NotFound(c, appErrors.ResourceNotFound, "Favorite not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// RecordDownload handles POST /api/apps/:id/download
func (ctrl *ProfileController) RecordDownload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.profileService.RecordDownload(userID, appID); err != nil {
		if errors.Is(err, service.ErrAppNotFound) {
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Download recorded"})
}

func requireUserID(c *gin.Context) (uint, bool) {
	userID, authenticated := middleware.GetUserID(c)
	if !authenticated {
		appErrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}
