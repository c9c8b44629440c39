package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	VKID         *int64         `gorm:"uniqueIndex:idx_users_vk_id" json:"vk_id,omitempty"`  // VK user id; nil for admin accounts
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `gorm:"index" json:"email,omitempty"`                        // set for admin accounts, VK rarely provides it
	Avatar       string         `json:"avatar"`                                              // VK photo_200 URL
	PasswordHash string         `json:"-"`                                                   // admin accounts only
	Role         UserRole       `gorm:"type:varchar(20);default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// DisplayName is the name shown next to the user's reviews.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
