package repository

import (
	"time"

	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DownloadRepository interface {
	Upsert(userID, appID uint) error
	ListByUser(userID uint) ([]model.Download, error)
}

type downloadRepository struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepository{db: db}
}

// Upsert records a download, keeping the most recent timestamp when the
// user downloads the same app again.
func (r *downloadRepository) Upsert(userID, appID uint) error {
	download := model.Download{
		UserID:       userID,
		AppID:        appID,
		DownloadedAt: time.Now(),
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "app_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"downloaded_at"}),
	}).Create(&download).Error
}

func (r *downloadRepository) ListByUser(userID uint) ([]model.Download, error) {
	var downloads []model.Download
	err := r.db.Preload("App").
		Where("user_id = ?", userID).
		Order("downloaded_at DESC").
		Find(&downloads).Error
	if err != nil {
		return nil, err
	}
	return downloads, nil
}
