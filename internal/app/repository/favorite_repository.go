package repository

import (
	"time"

	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Upsert(userID, appID uint) error
	Remove(userID, appID uint) error
	ListByUser(userID uint) ([]model.Favorite, error)
	Exists(userID, appID uint) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Upsert adds the app to the user's favorites, refreshing the timestamp
// when the pair already exists.
func (r *favoriteRepository) Upsert(userID, appID uint) error {
	favorite := model.Favorite{
		UserID:  userID,
		AppID:   appID,
		AddedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "app_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"added_at"}),
	}).Create(&favorite).Error
}

func (r *favoriteRepository) Remove(userID, appID uint) error {
	result := r.db.Where("user_id = ? AND app_id = ?", userID, appID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *favoriteRepository) ListByUser(userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Preload("App").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) Exists(userID, appID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND app_id = ?", userID, appID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
