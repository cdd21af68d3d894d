package models

import (
	"time"
)

// Moderation action constants.
const (
	ActionKillItem      = "kill_item"
	ActionUnkillItem    = "unkill_item"
	ActionKillComment   = "kill_comment"
	ActionUnkillComment = "unkill_comment"
	ActionBanUser       = "ban_user"
	ActionUnbanUser     = "unban_user"
)

// ModerationLog is append-only: rows are created and read, never updated or
// deleted.
type ModerationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Moderator string    `gorm:"not null;index;size:50" json:"moderator"`
	Action    string    `gorm:"size:40;not null" json:"action"`
	Username  *string   `gorm:"size:50;index" json:"username,omitempty"`
	ItemID    *string   `gorm:"size:36;index" json:"item_id,omitempty"`
	CommentID *string   `gorm:"size:36;index" json:"comment_id,omitempty"`
	Reason    string    `gorm:"size:200" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
