package model

import "time"

// Favorite links a user to an app they starred. Re-adding refreshes
// AddedAt instead of duplicating the row.
type Favorite struct {
	ID      uint      `gorm:"primarykey" json:"id"`
	UserID  uint      `gorm:"not null;index:idx_favorites_user_app,unique" json:"user_id"`
	AppID   uint      `gorm:"not null;index:idx_favorites_user_app,unique" json:"app_id"`
	AddedAt time.Time `gorm:"not null" json:"added_at"`

	App App `gorm:"foreignKey:AppID" json:"app,omitempty"`
}

func (Favorite) TableName() string {
	return "user_favorites"
}
