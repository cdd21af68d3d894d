package models

import (
	"time"
)

// VoteState is the stance a user holds on one piece of content.
type VoteState int

const (
	VoteDown VoteState = -1
	VoteNone VoteState = 0
	VoteUp   VoteState = 1
)

// Score is the point contribution of a state.
func (s VoteState) Score() int { return int(s) }

func (s VoteState) String() string {
	switch s {
	case VoteUp:
		return "up"
	case VoteDown:
		return "down"
	default:
		return "none"
	}
}

// ParseVoteState maps the wire form ("up"/"down"/"none") to a VoteState.
func ParseVoteState(s string) (VoteState, bool) {
	switch s {
	case "up":
		return VoteUp, true
	case "down":
		return VoteDown, true
	case "none":
		return VoteNone, true
	}
	return VoteNone, false
}

// Content types a vote may target.
const (
	ContentItem    = "item"
	ContentComment = "comment"
)

// Vote holds at most one live row per (user, content). A state change
// replaces the row; a cast of VoteNone deletes it.
type Vote struct {
	Username    string `gorm:"primaryKey;size:50" json:"username"`
	ContentID   string `gorm:"primaryKey;size:36" json:"content_id"`
	ContentType string `gorm:"primaryKey;size:10" json:"content_type"`
	Value       int    `gorm:"not null" json:"value"` // 1 or -1
	// For comment votes, the item the comment hangs off. Lets score
	// bookkeeping reach the owning item without a second lookup.
	ParentItemID string    `gorm:"size:36;index" json:"parent_item_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
