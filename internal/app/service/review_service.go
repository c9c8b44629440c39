package service

import (
	"errors"
	"strings"

	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/internal/app/repository"
	"github.com/vmaksimov/appstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAppNotFound        = errors.New("app not found")
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewExists       = errors.New("user already reviewed this app")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrReviewTextRequired = errors.New("review text is required")
	ErrNotReviewOwner     = errors.New("review belongs to another user")
)

// reviewDateLayout is the date format review responses carry.
const reviewDateLayout = "02.01.2006"

type CreateReviewInput struct {
	AppID  uint
	UserID *uint
	Author string
	Text   string
	Rating int
}

type UpdateReviewInput struct {
	Text   string
	Rating int
}

type ReviewResponse struct {
	ID     uint   `json:"id"`
	UserID *uint  `json:"user_id,omitempty"`
	Author string `json:"author"`
	Avatar string `json:"avatar,omitempty"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	Likes  int    `json:"likes"`
	Date   string `json:"date"`
}

type AppRatingResponse struct {
	AppID        uint          `json:"app_id"`
	Average      float64       `json:"average_rating"`
	TotalReviews int64         `json:"total_reviews"`
	Distribution map[int]int64 `json:"rating_distribution"`
}

type ReviewService interface {
	CreateReview(input CreateReviewInput) (*ReviewResponse, error)
	ListReviews(appID uint) ([]ReviewResponse, error)
	LikeReview(reviewID uint) (int, error)
	UpdateReview(reviewID, userID uint, input UpdateReviewInput) (*ReviewResponse, error)
	DeleteReview(reviewID, userID uint, role model.UserRole) error
	GetAppRating(appID uint) (*AppRatingResponse, error)
}

type reviewService struct {
	db         *gorm.DB
	reviewRepo *repository.ReviewRepository
	ratingRepo *repository.RatingRepository
	appRepo    repository.AppRepository
	userRepo   repository.UserRepository
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo *repository.ReviewRepository,
	ratingRepo *repository.RatingRepository,
	appRepo repository.AppRepository,
	userRepo repository.UserRepository,
) ReviewService {
	return &reviewService{
		db:         db,
		reviewRepo: reviewRepo,
		ratingRepo: ratingRepo,
		appRepo:    appRepo,
		userRepo:   userRepo,
	}
}

// CreateReview validates the submission and writes the review together
// with the recomputed app rating in one transaction, so the summary
// never drifts from the review rows.
func (s *reviewService) CreateReview(input CreateReviewInput) (*ReviewResponse, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrReviewTextRequired
	}

	if _, err := s.appRepo.FindByID(input.AppID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	author := strings.TrimSpace(input.Author)
	var avatar string

	if input.UserID != nil {
		exists, err := s.reviewRepo.ExistsForAppAndUser(input.AppID, *input.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrReviewExists
		}

		user, err := s.userRepo.FindByID(*input.UserID)
		if err != nil {
			return nil, err
		}
		author = user.DisplayName()
		avatar = user.Avatar
	} else if author == "" {
		author = "Guest"
	}

	review := &model.Review{
		AppID:  input.AppID,
		UserID: input.UserID,
		Author: author,
		Text:   strings.TrimSpace(input.Text),
		Rating: input.Rating,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.reviewRepo.WithTx(tx).CreateReview(review); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.ratingRepo.WithTx(tx).Recompute(input.AppID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"app_id":    review.AppID,
		"rating":    review.Rating,
	})

	response := toReviewResponse(review)
	response.Avatar = avatar
	return &response, nil
}

func (s *reviewService) ListReviews(appID uint) ([]ReviewResponse, error) {
	if _, err := s.appRepo.FindByID(appID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.GetReviewsByAppID(appID)
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, toReviewResponse(&reviews[i]))
	}
	return responses, nil
}

// LikeReview bumps the like counter and returns the new value.
func (s *reviewService) LikeReview(reviewID uint) (int, error) {
	likes, err := s.reviewRepo.IncrementLikes(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrReviewNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (s *reviewService) UpdateReview(reviewID, userID uint, input UpdateReviewInput) (*ReviewResponse, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrReviewTextRequired
	}

	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID == nil || *review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	review.Text = strings.TrimSpace(input.Text)
	review.Rating = input.Rating

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.reviewRepo.WithTx(tx).UpdateReview(review); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.ratingRepo.WithTx(tx).Recompute(review.AppID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	response := toReviewResponse(review)
	return &response, nil
}

// DeleteReview removes a review. Owners may delete their own reviews,
// admins may delete any.
func (s *reviewService) DeleteReview(reviewID, userID uint, role model.UserRole) error {
	review, err := s.reviewRepo.GetReviewByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if role != model.RoleAdmin {
		if review.UserID == nil || *review.UserID != userID {
			return ErrNotReviewOwner
		}
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := s.reviewRepo.WithTx(tx).DeleteReview(reviewID); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.ratingRepo.WithTx(tx).Recompute(review.AppID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// GetAppRating returns the stored summary with a per-star breakdown.
// Apps without rated reviews get the zero summary.
func (s *reviewService) GetAppRating(appID uint) (*AppRatingResponse, error) {
	if _, err := s.appRepo.FindByID(appID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	summary, err := s.ratingRepo.Get(appID)
	if err != nil {
		return nil, err
	}
	distribution, err := s.reviewRepo.GetRatingDistribution(appID)
	if err != nil {
		return nil, err
	}

	response := &AppRatingResponse{
		AppID:        appID,
		Distribution: distribution,
	}
	if summary != nil {
		response.Average = summary.AverageRating
		response.TotalReviews = summary.TotalReviews
	}
	return response, nil
}

func toReviewResponse(review *model.Review) ReviewResponse {
	response := ReviewResponse{
		ID:     review.ID,
		UserID: review.UserID,
		Author: review.Author,
		Text:   review.Text,
		Rating: review.Rating,
		Likes:  review.Likes,
		Date:   review.CreatedAt.Format(reviewDateLayout),
	}
	if review.User != nil {
		response.Author = review.User.DisplayName()
		response.Avatar = review.User.Avatar
	}
	return response
}
