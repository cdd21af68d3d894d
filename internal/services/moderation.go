package services

import (
	"errors"

	"kindling/internal/models"

	"gorm.io/gorm"
)

// ModerationService flips dead/banned flags and records every action in the
// append-only log, both in the same transaction. Nothing ever updates or
// deletes a log row.
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

func (s *ModerationService) setItemDead(moderator, itemID string, dead bool, action, reason string) error {
	return inTx(s.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.Item{}).Where("id = ?", itemID).UpdateColumn("dead", dead)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return tx.Create(&models.ModerationLog{
			Moderator: moderator,
			Action:    action,
			ItemID:    &itemID,
			Reason:    reason,
		}).Error
	})
}

func (s *ModerationService) setCommentDead(moderator, commentID string, dead bool, action, reason string) error {
	return inTx(s.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).Where("id = ?", commentID).UpdateColumn("dead", dead)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return tx.Create(&models.ModerationLog{
			Moderator: moderator,
			Action:    action,
			CommentID: &commentID,
			Reason:    reason,
		}).Error
	})
}

func (s *ModerationService) KillItem(moderator, itemID, reason string) error {
	return s.setItemDead(moderator, itemID, true, models.ActionKillItem, reason)
}

func (s *ModerationService) UnkillItem(moderator, itemID, reason string) error {
	return s.setItemDead(moderator, itemID, false, models.ActionUnkillItem, reason)
}

func (s *ModerationService) KillComment(moderator, commentID, reason string) error {
	return s.setCommentDead(moderator, commentID, true, models.ActionKillComment, reason)
}

func (s *ModerationService) UnkillComment(moderator, commentID, reason string) error {
	return s.setCommentDead(moderator, commentID, false, models.ActionUnkillComment, reason)
}

func (s *ModerationService) setUserBanned(moderator, username string, banned bool, action, reason string) error {
	return inTx(s.db, func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "username = ?", username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&user).UpdateColumn("banned", banned).Error; err != nil {
			return err
		}
		return tx.Create(&models.ModerationLog{
			Moderator: moderator,
			Action:    action,
			Username:  &username,
			Reason:    reason,
		}).Error
	})
}

func (s *ModerationService) BanUser(moderator, username, reason string) error {
	return s.setUserBanned(moderator, username, true, models.ActionBanUser, reason)
}

func (s *ModerationService) UnbanUser(moderator, username, reason string) error {
	return s.setUserBanned(moderator, username, false, models.ActionUnbanUser, reason)
}

// Log returns the most recent actions, newest first.
func (s *ModerationService) Log(limit int) ([]models.ModerationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []models.ModerationLog
	err := s.db.Order("id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
