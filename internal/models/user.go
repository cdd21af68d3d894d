package models

import (
	"time"
)

type User struct {
	Username     string    `gorm:"primaryKey;size:50" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Karma        int       `gorm:"default:0" json:"karma"` // adjusted only by vote and creation events
	About        string    `gorm:"size:400" json:"about"`
	Banned       bool      `gorm:"default:false" json:"banned"`
	IsModerator  bool      `gorm:"default:false" json:"is_moderator"`
	ShowDead     bool      `gorm:"default:false" json:"show_dead"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}
