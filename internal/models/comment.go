package models

import (
	"time"
)

// CommentPointsFloor is the lowest a comment's points may sink under downvotes.
const CommentPointsFloor = -4

type Comment struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Username        string    `gorm:"not null;index;size:50" json:"username"`
	ParentItemID    string    `gorm:"not null;index;size:36" json:"parent_item_id"`
	ParentItemTitle string    `gorm:"not null" json:"parent_item_title"` // frozen at creation
	IsParent        bool      `gorm:"not null" json:"is_parent"`         // true iff direct child of the item
	RootCommentID   string    `gorm:"not null;index;size:36" json:"root_comment_id"`
	ParentCommentID *string   `gorm:"index;size:36" json:"parent_comment_id,omitempty"` // nil iff IsParent
	ChildrenCount   int       `gorm:"default:0" json:"children_count"`
	Text            string    `gorm:"type:text;not null" json:"text"`
	Points          int       `gorm:"default:1" json:"points"`
	Dead            bool      `gorm:"default:false;index" json:"dead"`
	CreatedAt       time.Time `json:"created_at"`
}
