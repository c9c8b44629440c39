package model

import (
	"time"
)

// Review is a user-submitted text plus star rating attached to an App.
// Authenticated reviews carry a UserID and are unique per (app, user);
// guest reviews carry only a free-text Author and may repeat.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	AppID     uint      `gorm:"not null;index:idx_reviews_app_user,unique" json:"app_id"`
	App       *App      `gorm:"foreignKey:AppID" json:"-"`
	UserID    *uint     `gorm:"index:idx_reviews_app_user,unique" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Author    string    `json:"author"` // guest display name; overridden by the user's name when UserID is set
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
