package model

import (
	"time"

	"gorm.io/gorm"
)

type App struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Developer   string         `gorm:"not null" json:"developer"`
	Category    string         `gorm:"not null;index" json:"category"`
	AgeRating   string         `json:"age_rating"` // e.g. "12+"
	Description string         `gorm:"type:text" json:"description"`
	IconURL     string         `json:"icon_url"`
	Rating      float64        `gorm:"default:0" json:"rating"` // editorial rating seed, not the review aggregate
	Version     string         `json:"version"`
	Size        string         `json:"size"`  // human-readable, e.g. "45 MB"
	Price       string         `gorm:"default:'Free'" json:"price"`
	Featured    bool           `gorm:"default:false;index" json:"featured"`
	TopWeek     bool           `gorm:"default:false;index" json:"top_week"`
	LastUpdate  *time.Time     `json:"last_update,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Deleted together with the app
	Screenshots []Screenshot `gorm:"foreignKey:AppID;constraint:OnDelete:CASCADE" json:"screenshots,omitempty"`
}

func (App) TableName() string {
	return "apps"
}

type Screenshot struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	AppID    uint   `gorm:"not null;index" json:"app_id"`
	ImageURL string `gorm:"not null" json:"image_url"`
}

func (Screenshot) TableName() string {
	return "screenshots"
}
