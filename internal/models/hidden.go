package models

import (
	"time"
)

// Hidden marks an item a user suppressed from their listings. Same toggle
// semantics as Favorite.
type Hidden struct {
	Username  string    `gorm:"primaryKey;size:50" json:"username"`
	ItemID    string    `gorm:"primaryKey;size:36" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
