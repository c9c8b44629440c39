package repository

import (
	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ReviewRepository) WithTx(tx *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: tx}
}

func (r *ReviewRepository) CreateReview(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *ReviewRepository) GetReviewByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) GetReviewsByAppID(appID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Preload("User").
		Where("app_id = ?", appID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) GetReviewsByUserID(userID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Preload("App").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ExistsForAppAndUser reports whether the user already reviewed the app.
func (r *ReviewRepository) ExistsForAppAndUser(appID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Review{}).
		Where("app_id = ? AND user_id = ?", appID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) UpdateReview(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *ReviewRepository) DeleteReview(id uint) error {
	result := r.db.Delete(&model.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncrementLikes bumps the like counter server-side and returns the
// value this increment produced. Update and read are one statement via
// RETURNING, so concurrent likes never lose increments and never read
// each other's result.
func (r *ReviewRepository) IncrementLikes(id uint) (int, error) {
	var likes int
	result := r.db.
		Raw("UPDATE reviews SET likes = likes + 1 WHERE id = ? RETURNING likes", id).
		Scan(&likes)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return likes, nil
}

// GetRatingDistribution counts rated reviews per star value (1..5).
func (r *ReviewRepository) GetRatingDistribution(appID uint) (map[int]int64, error) {
	type bucket struct {
		Rating int
		Count  int64
	}
	var buckets []bucket
	err := r.db.Model(&model.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("app_id = ? AND rating > 0", appID).
		Group("rating").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}

	distribution := make(map[int]int64, 5)
	for star := 1; star <= 5; star++ {
		distribution[star] = 0
	}
	for _, b := range buckets {
		distribution[b.Rating] = b.Count
	}
	return distribution, nil
}
