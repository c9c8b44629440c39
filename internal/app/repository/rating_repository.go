package repository

import (
	"errors"
	"time"

	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository maintains the per-app rating summary derived from
// review rows. The summary is the only thing catalog reads consult, so
// it must be recomputed inside the same transaction as any review write.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return &RatingRepository{db: tx}
}

// Recompute rebuilds the summary for an app from its reviews. The
// rating > 0 filter guards against out-of-range rows; the write path
// only admits 1-5. When no reviews remain the summary row is removed,
// so readers fall back to the zero summary.
func (r *RatingRepository) Recompute(appID uint) error {
	var agg struct {
		Average float64
		Total   int64
	}
	err := r.db.Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("app_id = ? AND rating > 0", appID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	if agg.Total == 0 {
		return r.db.Where("app_id = ?", appID).Delete(&model.AppRating{}).Error
	}

	summary := model.AppRating{
		AppID:         appID,
		AverageRating: agg.Average,
		TotalReviews:  agg.Total,
		LastUpdated:   time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"average_rating", "total_reviews", "last_updated"}),
	}).Create(&summary).Error
}

// GetMany returns summaries for the given apps keyed by app ID. Apps
// without a summary are simply absent from the map.
func (r *RatingRepository) GetMany(appIDs []uint) (map[uint]model.AppRating, error) {
	summaries := make(map[uint]model.AppRating, len(appIDs))
	if len(appIDs) == 0 {
		return summaries, nil
	}

	var rows []model.AppRating
	if err := r.db.Where("app_id IN ?", appIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summaries[row.AppID] = row
	}
	return summaries, nil
}

// Get returns the stored summary, or nil when the app has no rated
// reviews yet.
func (r *RatingRepository) Get(appID uint) (*model.AppRating, error) {
	var summary model.AppRating
	err := r.db.Where("app_id = ?", appID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}
