package services

import (
	"errors"
	"fmt"

	"kindling/internal/models"

	"gorm.io/gorm"
)

// VoteOutcome reports what a cast did.
type VoteOutcome struct {
	Previous  string `json:"previous"`
	State     string `json:"state"`
	Delta     int    `json:"delta"`
	Points    int    `json:"points"`
	Unchanged bool   `json:"unchanged"`
}

// VoteService is the vote ledger: one live vote row per (user, content),
// points and author karma moved in the same transaction as the row.
type VoteService struct {
	db      *gorm.DB
	ranking *RankingService
}

func NewVoteService(db *gorm.DB, ranking *RankingService) *VoteService {
	return &VoteService{db: db, ranking: ranking}
}

// Cast sets the voter's state on the content. Casting the stored state again
// is a successful no-op. Casting VoteNone withdraws the vote and deletes the
// row. Points, author karma and the vote row move atomically; concurrent
// casts on the same content are safe because every update is relative.
func (s *VoteService) Cast(voter, contentType, contentID string, newState models.VoteState) (*VoteOutcome, error) {
	var out VoteOutcome
	var itemID string // owning item, for the ranking queue

	err := inTx(s.db, func(tx *gorm.DB) error {
		var author string
		switch contentType {
		case models.ContentItem:
			var item models.Item
			if err := tx.First(&item, "id = ?", contentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			author = item.Username
			itemID = item.ID
		case models.ContentComment:
			var comment models.Comment
			if err := tx.First(&comment, "id = ?", contentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}
			author = comment.Username
			itemID = comment.ParentItemID
		default:
			return fmt.Errorf("%w: unknown content type %q", models.ErrInvalidState, contentType)
		}

		// Submitting already seeds the author's own point; a second vote
		// would double-count it.
		if author == voter {
			return fmt.Errorf("%w: cannot vote on own content", models.ErrForbidden)
		}

		old := models.VoteNone
		var existing models.Vote
		err := tx.Where("username = ? AND content_id = ? AND content_type = ?",
			voter, contentID, contentType).First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if found {
			old = models.VoteState(existing.Value)
		}

		out.Previous = old.String()
		out.State = newState.String()

		if old == newState {
			out.Unchanged = true
			return readPoints(tx, contentType, contentID, &out.Points)
		}

		delta := newState.Score() - old.Score()
		out.Delta = delta

		if contentType == models.ContentItem {
			if err := tx.Model(&models.Item{}).Where("id = ?", contentID).
				UpdateColumn("points", gorm.Expr("points + ?", delta)).Error; err != nil {
				return err
			}
		} else {
			// Relative update clamped at the floor; CASE keeps it a single
			// statement on both Postgres and SQLite.
			floor := models.CommentPointsFloor
			if err := tx.Model(&models.Comment{}).Where("id = ?", contentID).
				UpdateColumn("points", gorm.Expr(
					"CASE WHEN points + ? < ? THEN ? ELSE points + ? END",
					delta, floor, floor, delta)).Error; err != nil {
				return err
			}
		}

		// Karma tracks the content author's reputation, not the voter's.
		if err := adjustKarma(tx, author, delta); err != nil {
			return err
		}

		switch {
		case newState == models.VoteNone:
			if err := tx.Where("username = ? AND content_id = ? AND content_type = ?",
				voter, contentID, contentType).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
		case found:
			if err := tx.Model(&models.Vote{}).
				Where("username = ? AND content_id = ? AND content_type = ?",
					voter, contentID, contentType).
				UpdateColumn("value", newState.Score()).Error; err != nil {
				return err
			}
		default:
			vote := models.Vote{
				Username:     voter,
				ContentID:    contentID,
				ContentType:  contentType,
				Value:        newState.Score(),
				ParentItemID: itemID,
			}
			if err := tx.Create(&vote).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return models.ErrConflict
				}
				return err
			}
		}

		return readPoints(tx, contentType, contentID, &out.Points)
	})
	if err != nil {
		return nil, err
	}

	if s.ranking != nil && !out.Unchanged {
		s.ranking.ScheduleUpdate(itemID)
	}
	return &out, nil
}

// State returns the voter's stored state on the content.
func (s *VoteService) State(voter, contentType, contentID string) (models.VoteState, error) {
	var vote models.Vote
	err := s.db.Where("username = ? AND content_id = ? AND content_type = ?",
		voter, contentID, contentType).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.VoteNone, nil
	}
	if err != nil {
		return models.VoteNone, err
	}
	return models.VoteState(vote.Value), nil
}

func readPoints(tx *gorm.DB, contentType, contentID string, dst *int) error {
	if contentType == models.ContentItem {
		return tx.Model(&models.Item{}).Where("id = ?", contentID).
			Select("points").Scan(dst).Error
	}
	return tx.Model(&models.Comment{}).Where("id = ?", contentID).
		Select("points").Scan(dst).Error
}
