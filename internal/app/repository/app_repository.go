package repository

import (
	"strings"

	"github.com/vmaksimov/appstore-backend/internal/app/model"
	"github.com/vmaksimov/appstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// AppFilter narrows catalog listings. Zero values mean "do not filter".
type AppFilter struct {
	Category string
	Search   string
	Featured bool
	TopWeek  bool
}

type AppRepository interface {
	Create(app *model.App) error
	FindByID(id uint) (*model.App, error)
	FindWithFilter(filter AppFilter) ([]model.App, error)
	ListCategories() ([]string, error)
	Update(app *model.App) error
	ReplaceScreenshots(appID uint, urls []string) error
	Delete(id uint) error
}

type appRepository struct {
	db *gorm.DB
}

func NewAppRepository(db *gorm.DB) AppRepository {
	return &appRepository{db: db}
}

func (r *appRepository) Create(app *model.App) error {
	if err := r.db.Create(app).Error; err != nil {
		logger.Error("Failed to create app in database", err, map[string]interface{}{
			"name": app.Name,
		})
		return err
	}
	return nil
}

func (r *appRepository) FindByID(id uint) (*model.App, error) {
	var app model.App
	if err := r.db.Preload("Screenshots").First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *appRepository) FindWithFilter(filter AppFilter) ([]model.App, error) {
	var apps []model.App

	query := r.db.Model(&model.App{}).Preload("Screenshots")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		query = query.Where("featured = ?", true)
	}
	if filter.TopWeek {
		query = query.Where("top_week = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := query.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *appRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.App{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *appRepository) Update(app *model.App) error {
	return r.db.Save(app).Error
}

// ReplaceScreenshots swaps the full screenshot set of an app.
func (r *appRepository) ReplaceScreenshots(appID uint, urls []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("app_id = ?", appID).Delete(&model.Screenshot{}).Error; err != nil {
			return err
		}
		for _, url := range urls {
			shot := model.Screenshot{AppID: appID, ImageURL: url}
			if err := tx.Create(&shot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the app together with its reviews, rating summary and
// screenshots so no orphaned aggregate survives the catalog entry.
func (r *appRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("app_id = ?", id).Delete(&model.Screenshot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", id).Delete(&model.AppRating{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.App{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
