package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vmaksimov/appstore-backend/internal/app/service"
	appErrors "github.com/vmaksimov/appstore-backend/internal/errors"
	"github.com/vmaksimov/appstore-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type createReviewRequest struct {
	Author string `json:"author"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating"`
}

type updateReviewRequest struct {
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating"`
}

// ListReviews handles GET /api/apps/:id/reviews
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.ListReviews(appID)
	if err != nil {
		if errors.Is(err, service.ErrAppNotFound) {
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview handles POST /api/apps/:id/reviews. Authentication is
// optional: signed-in users get their identity attached, guests submit
// under a display name.
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	input := service.CreateReviewInput{
		AppID:  appID,
		Author: req.Author,
		Text:   req.Text,
		Rating: req.Rating,
	}
	if userID, authenticated := middleware.GetUserID(c); authenticated {
		input.UserID = &userID
	}

	review, err := ctrl.reviewService.CreateReview(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppNotFound):
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
		case errors.Is(err, service.ErrInvalidRating):
			appErrors.BadRequest(c, appErrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrReviewTextRequired):
			appErrors.BadRequest(c, appErrors.ReviewTextRequired, "Review text is required")
		case errors.Is(err, service.ErrReviewExists):
			appErrors.BadRequest(c, appErrors.ReviewAlreadyExists, "You have already reviewed this app")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"app_id": appID,
			})
			respondDatabaseError(c, err, "review")
		}
		return
	}

	c.JSON(http.StatusCreated, review)
}

// LikeReview handles POST /api/reviews/:id/like
func (ctrl *ReviewController) LikeReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	likes, err := ctrl.reviewService.LikeReview(reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			appErrors.NotFound(c, appErrors.ReviewNotFound, "Review not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// UpdateReview handles PUT /api/reviews/:id (owner only)
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, authenticated := middleware.GetUserID(c)
	if !authenticated {
		appErrors.Unauthorized(c, "")
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	review, err := ctrl.reviewService.UpdateReview(reviewID, userID, service.UpdateReviewInput{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			appErrors.NotFound(c, appErrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrNotReviewOwner):
			appErrors.RespondWithError(c, http.StatusForbidden, appErrors.AuthzOwnerOnly, "You can only edit your own reviews")
		case errors.Is(err, service.ErrInvalidRating):
			appErrors.BadRequest(c, appErrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrReviewTextRequired):
			appErrors.BadRequest(c, appErrors.ReviewTextRequired, "Review text is required")
		default:
			appErrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/:id (owner or admin)
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, authenticated := middleware.GetUserID(c)
	if !authenticated {
		appErrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := ctrl.reviewService.DeleteReview(reviewID, userID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			appErrors.NotFound(c, appErrors.ReviewNotFound, "Review not found")
		case errors.Is(err, service.ErrNotReviewOwner):
			appErrors.RespondWithError(c, http.StatusForbidden, appErrors.AuthzOwnerOnly, "You can only delete your own reviews")
		default:
			appErrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// GetAppRating handles GET /api/apps/:id/rating
func (ctrl *ReviewController) GetAppRating(c *gin.Context) {
	appID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rating, err := ctrl.reviewService.GetAppRating(appID)
	if err != nil {
		if errors.Is(err, service.ErrAppNotFound) {
			appErrors.NotFound(c, appErrors.AppNotFound, "App not found")
			return
		}
		appErrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, rating)
}

// parseIDParam reads a numeric path parameter, responding 400 on junk.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		appErrors.BadRequest(c, appErrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(value), true
}

// respondDatabaseError maps raw database errors that slipped past the
// service layer to a safe response.
func respondDatabaseError(c *gin.Context, err error, context string) {
	info := appErrors.ParseError(err, context)

	status := http.StatusInternalServerError
	switch info.Code {
	case appErrors.ResourceNotFound, appErrors.AppNotFound, appErrors.UserNotFound:
		status = http.StatusNotFound
	case appErrors.ReviewAlreadyExists, appErrors.ResourceAlreadyExists, appErrors.ResourceConflict,
		appErrors.ValidationRequired, appErrors.ValidationInvalidInput, appErrors.ReviewInvalidRating:
		status = http.StatusBadRequest
	case appErrors.InternalExternalAPI:
		status = http.StatusBadGateway
	}

	appErrors.RespondWithError(c, status, info.Code, info.Message)
}
