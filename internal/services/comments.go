package services

import (
	"errors"
	"fmt"
	"strings"

	"kindling/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCommentParams carries a validated comment submission.
type CreateCommentParams struct {
	Username        string
	ItemID          string
	ParentCommentID *string
	Text            string
}

// CommentService maintains the comment forest: every comment chains up
// through parent_comment_id to a root with is_parent set, and the owning
// item's comment_count always equals the number of comments under it.
type CommentService struct {
	db      *gorm.DB
	ranking *RankingService
}

func NewCommentService(db *gorm.DB, ranking *RankingService) *CommentService {
	return &CommentService{db: db, ranking: ranking}
}

// Create inserts the comment and, in the same transaction, bumps the item's
// comment_count, the parent comment's children_count and the author's karma.
func (s *CommentService) Create(p CreateCommentParams) (*models.Comment, error) {
	if strings.TrimSpace(p.Text) == "" {
		return nil, fmt.Errorf("%w: empty comment", models.ErrInvalidState)
	}

	var comment models.Comment
	err := inTx(s.db, func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", p.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if item.Dead {
			return fmt.Errorf("%w: item is dead", models.ErrInvalidState)
		}

		id := uuid.NewString()
		comment = models.Comment{
			ID:              id,
			Username:        p.Username,
			ParentItemID:    item.ID,
			ParentItemTitle: item.Title,
			IsParent:        p.ParentCommentID == nil,
			RootCommentID:   id,
			Text:            p.Text,
			Points:          1,
		}

		if p.ParentCommentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, "id = ?", *p.ParentCommentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			if parent.ParentItemID != item.ID {
				return fmt.Errorf("%w: parent comment belongs to another item", models.ErrInvalidState)
			}
			comment.RootCommentID = parent.RootCommentID
			comment.ParentCommentID = &parent.ID
			if err := tx.Model(&models.Comment{}).Where("id = ?", parent.ID).
				UpdateColumn("children_count", gorm.Expr("children_count + 1")).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
			return err
		}
		return adjustKarma(tx, p.Username, 1)
	})
	if err != nil {
		return nil, err
	}

	if s.ranking != nil {
		s.ranking.ScheduleUpdate(comment.ParentItemID)
	}
	return &comment, nil
}

// Get returns the comment and its direct children. Dead children are
// filtered unless showDead is set.
func (s *CommentService) Get(id string, showDead bool) (*models.Comment, []models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrNotFound
		}
		return nil, nil, err
	}

	q := s.db.Where("parent_comment_id = ?", id)
	if !showDead {
		q = q.Where("dead = ?", false)
	}
	var children []models.Comment
	if err := q.Order("points DESC, created_at ASC").Find(&children).Error; err != nil {
		return nil, nil, err
	}
	return &comment, children, nil
}

// ListForItem returns all comments under an item, points-ordered.
func (s *CommentService) ListForItem(itemID string, showDead bool) ([]models.Comment, error) {
	q := s.db.Where("parent_item_id = ?", itemID)
	if !showDead {
		q = q.Where("dead = ?", false)
	}
	var comments []models.Comment
	if err := q.Order("points DESC, created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete removes the comment and every descendant in one transaction and
// decrements the item's comment_count by the number removed. The traversal
// is an explicit worklist, not recursion: depth is unbounded but the forest
// has no cycles, so the frontier always shrinks to empty.
func (s *CommentService) Delete(id, requester string, isModerator bool) (int, error) {
	removed := 0
	itemID := ""

	err := inTx(s.db, func(tx *gorm.DB) error {
		var root models.Comment
		if err := tx.First(&root, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if root.Username != requester && !isModerator {
			return models.ErrForbidden
		}
		itemID = root.ParentItemID

		ids := []string{root.ID}
		frontier := []string{root.ID}
		for len(frontier) > 0 {
			var children []models.Comment
			if err := tx.Select("id").
				Where("parent_comment_id IN ?", frontier).
				Find(&children).Error; err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, c := range children {
				ids = append(ids, c.ID)
				frontier = append(frontier, c.ID)
			}
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("content_type = ? AND content_id IN ?",
			models.ContentComment, ids).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if root.ParentCommentID != nil {
			if err := tx.Model(&models.Comment{}).Where("id = ?", *root.ParentCommentID).
				UpdateColumn("children_count", gorm.Expr("children_count - 1")).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Item{}).Where("id = ?", itemID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", len(ids))).Error; err != nil {
			return err
		}
		removed = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if s.ranking != nil {
		s.ranking.ScheduleUpdate(itemID)
	}
	return removed, nil
}
