package services

import (
	"errors"
	"testing"
	"time"

	"kindling/internal/models"

	"gorm.io/gorm"
)

func TestTransactionDeadlineSurfacesAsTransient(t *testing.T) {
	g := newTestDB(t)

	old := txTimeout
	txTimeout = 10 * time.Millisecond
	defer func() { txTimeout = old }()

	err := inTx(g, func(tx *gorm.DB) error {
		time.Sleep(50 * time.Millisecond)
		return tx.Exec("SELECT 1").Error
	})
	if !errors.Is(err, models.ErrTransient) {
		t.Fatalf("err = %v, want ErrTransient", err)
	}
}

func TestTransactionDeadlineRollsBack(t *testing.T) {
	g := newTestDB(t)

	old := txTimeout
	txTimeout = 10 * time.Millisecond
	defer func() { txTimeout = old }()

	err := inTx(g, func(tx *gorm.DB) error {
		if err := tx.Create(&models.User{Username: "ghost", PasswordHash: "x"}).Error; err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
		return tx.Exec("SELECT 1").Error
	})
	if !errors.Is(err, models.ErrTransient) {
		t.Fatalf("err = %v, want ErrTransient", err)
	}

	var count int64
	g.Model(&models.User{}).Where("username = ?", "ghost").Count(&count)
	if count != 0 {
		t.Fatalf("partial effect persisted: %d rows", count)
	}
}
