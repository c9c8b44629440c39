package model

import "time"

// Download records that a user installed an app. Re-downloading
// refreshes DownloadedAt instead of duplicating the row.
type Download struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_downloads_user_app,unique" json:"user_id"`
	AppID        uint      `gorm:"not null;index:idx_downloads_user_app,unique" json:"app_id"`
	DownloadedAt time.Time `gorm:"not null" json:"downloaded_at"`

	App App `gorm:"foreignKey:AppID" json:"app,omitempty"`
}

func (Download) TableName() string {
	return "user_downloads"
}
