package services

import (
	"errors"

	"kindling/internal/models"

	"gorm.io/gorm"
)

// Toggle outcomes.
const (
	StateFavorited   = "favorited"
	StateUnfavorited = "unfavorited"
	StateHidden      = "hidden"
	StateUnhidden    = "unhidden"
)

// FavoriteService owns the per-user favorite and hidden sets. Both are
// strict toggles: presence of the row is the entire state.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// ToggleFavorite flips membership and reports the resulting state. A race
// between two toggles by the same user resolves to whichever commits last;
// the loser of an insert race observes it as an already-present row, never
// as an error.
func (s *FavoriteService) ToggleFavorite(username, itemID string) (string, error) {
	result := ""
	err := inTx(s.db, func(tx *gorm.DB) error {
		if err := itemExists(tx, itemID); err != nil {
			return err
		}

		var existing models.Favorite
		err := tx.Where("username = ? AND item_id = ?", username, itemID).First(&existing).Error
		if err == nil {
			result = StateUnfavorited
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		result = StateFavorited
		create := tx.Create(&models.Favorite{Username: username, ItemID: itemID}).Error
		if create != nil && errors.Is(create, gorm.ErrDuplicatedKey) {
			// Concurrent toggle got there first; the set already holds it.
			return nil
		}
		return create
	})
	return result, err
}

// ToggleHidden flips an item in and out of the viewer's hidden set.
func (s *FavoriteService) ToggleHidden(username, itemID string) (string, error) {
	result := ""
	err := inTx(s.db, func(tx *gorm.DB) error {
		if err := itemExists(tx, itemID); err != nil {
			return err
		}

		var existing models.Hidden
		err := tx.Where("username = ? AND item_id = ?", username, itemID).First(&existing).Error
		if err == nil {
			result = StateUnhidden
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		result = StateHidden
		create := tx.Create(&models.Hidden{Username: username, ItemID: itemID}).Error
		if create != nil && errors.Is(create, gorm.ErrDuplicatedKey) {
			return nil
		}
		return create
	})
	return result, err
}

// ListFavorites returns the items a user starred, newest star first.
func (s *FavoriteService) ListFavorites(username string) ([]models.Item, error) {
	var items []models.Item
	err := s.db.Model(&models.Item{}).
		Joins("JOIN favorites ON favorites.item_id = items.id").
		Where("favorites.username = ?", username).
		Order("favorites.created_at DESC").
		Find(&items).Error
	return items, err
}

// IsFavorited reports membership without toggling.
func (s *FavoriteService) IsFavorited(username, itemID string) (bool, error) {
	var fav models.Favorite
	err := s.db.Where("username = ? AND item_id = ?", username, itemID).First(&fav).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func itemExists(tx *gorm.DB, itemID string) error {
	var count int64
	if err := tx.Model(&models.Item{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.ErrNotFound
	}
	return nil
}
