package model

import "time"

// AppRating is the materialized aggregate over an app's rated reviews
// (rating > 0). It is recomputed inside the transaction of every review
// write and never mutated directly. No row means "no rated reviews yet";
// the read path reports average 0, total 0 in that case.
type AppRating struct {
	ID            uint      `gorm:"primarykey" json:"-"`
	AppID         uint      `gorm:"not null;uniqueIndex:idx_app_ratings_app_id" json:"app_id"`
	AverageRating float64   `gorm:"not null" json:"average_rating"`
	TotalReviews  int64     `gorm:"not null" json:"total_reviews"`
	LastUpdated   time.Time `gorm:"not null" json:"last_updated"`
}

func (AppRating) TableName() string {
	return "app_ratings"
}
