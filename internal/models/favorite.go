package models

import (
	"time"
)

// Favorite marks an item a user starred. Presence is the whole state:
// toggling inserts or deletes the row, there is no stored "false".
type Favorite struct {
	Username  string    `gorm:"primaryKey;size:50" json:"username"`
	ItemID    string    `gorm:"primaryKey;size:36" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
