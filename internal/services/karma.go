package services

import (
	"kindling/internal/models"

	"gorm.io/gorm"
)

// adjustKarma applies a relative karma delta inside the caller's transaction.
// Karma has no public mutation path: only the vote ledger, the comment
// maintainer and item creation call this.
func adjustKarma(tx *gorm.DB, username string, delta int) error {
	return tx.Model(&models.User{}).
		Where("username = ?", username).
		UpdateColumn("karma", gorm.Expr("karma + ?", delta)).
		Error
}
