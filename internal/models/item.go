package models

import (
	"time"
)

type Item struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Username string `gorm:"not null;index;size:50" json:"username"` // submissions outlive their account
	Title    string `gorm:"not null" json:"title"`
	// URL/Domain and Text are mutually exclusive, enforced at creation.
	URL          string    `json:"url,omitempty"`
	Domain       string    `gorm:"index" json:"domain,omitempty"`
	Text         string    `gorm:"type:text" json:"text,omitempty"`
	Points       int       `gorm:"default:1" json:"points"` // starts at 1, the submitter's implicit vote
	Score        float64   `gorm:"default:0;index" json:"score"`
	CommentCount int       `gorm:"default:0" json:"comment_count"`
	Dead         bool      `gorm:"default:false;index" json:"dead"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
