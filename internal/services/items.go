package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kindling/internal/models"
	"kindling/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EditWindow is how long after submission an item stays editable.
const EditWindow = time.Hour

// ListPageSize is the number of items per listing page.
const ListPageSize = 30

// CreateItemParams carries a validated item submission. Exactly one of URL
// and Text must be set.
type CreateItemParams struct {
	Username string
	Title    string
	URL      string
	Text     string
}

type ItemService struct {
	db      *gorm.DB
	ranking *RankingService
	search  SearchNotifier
}

func NewItemService(db *gorm.DB, ranking *RankingService, search SearchNotifier) *ItemService {
	return &ItemService{db: db, ranking: ranking, search: search}
}

// Create inserts the item with the submitter's implicit point and grants the
// author +1 karma, atomically.
func (s *ItemService) Create(p CreateItemParams) (*models.Item, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: empty title", models.ErrInvalidState)
	}
	hasURL := strings.TrimSpace(p.URL) != ""
	hasText := strings.TrimSpace(p.Text) != ""
	if hasURL == hasText {
		return nil, fmt.Errorf("%w: exactly one of url and text required", models.ErrInvalidState)
	}

	item := models.Item{
		ID:       uuid.NewString(),
		Username: p.Username,
		Title:    p.Title,
		URL:      p.URL,
		Text:     p.Text,
		Points:   1, // submitter's own vote
	}
	if hasURL {
		item.Domain = utils.ExtractDomain(p.URL)
	}

	err := inTx(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return adjustKarma(tx, p.Username, 1)
	})
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		s.search.ItemIndexed(item.ID)
	}
	if s.ranking != nil {
		s.ranking.ScheduleUpdate(item.ID)
	}
	utils.GetCache().Delete(frontPageCacheKey(1))
	return &item, nil
}

// assertEditable is the derived edit predicate: owner only, inside the edit
// window, and only while nothing has been said in reply.
func assertEditable(item *models.Item, requester string, now time.Time) error {
	if item.Username != requester {
		return models.ErrForbidden
	}
	if now.Sub(item.CreatedAt) > EditWindow {
		return fmt.Errorf("%w: edit window expired", models.ErrInvalidState)
	}
	if item.CommentCount > 0 {
		return fmt.Errorf("%w: item already has comments", models.ErrInvalidState)
	}
	return nil
}

// Edit updates title/url/text while the item is still editable.
func (s *ItemService) Edit(id, requester, title, url, text string) (*models.Item, error) {
	hasURL := strings.TrimSpace(url) != ""
	hasText := strings.TrimSpace(text) != ""
	if strings.TrimSpace(title) == "" || hasURL == hasText {
		return nil, fmt.Errorf("%w: exactly one of url and text required", models.ErrInvalidState)
	}

	var item models.Item
	err := inTx(s.db, func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if err := assertEditable(&item, requester, time.Now()); err != nil {
			return err
		}

		item.Title = title
		item.URL = url
		item.Text = text
		item.Domain = ""
		if hasURL {
			item.Domain = utils.ExtractDomain(url)
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}

	if s.search != nil {
		s.search.ItemIndexed(item.ID)
	}
	utils.GetCache().Delete(frontPageCacheKey(1))
	return &item, nil
}

// Delete removes the item and everything hanging off it: comments, votes on
// the item and on its comments, favorite and hidden rows.
func (s *ItemService) Delete(id, requester string, isModerator bool) error {
	err := inTx(s.db, func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		if item.Username != requester && !isModerator {
			return models.ErrForbidden
		}

		if err := tx.Where("parent_item_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		// Votes on the item itself and on any of its comments share the
		// recorded parent item id.
		if err := tx.Where("content_id = ? OR parent_item_id = ?", id, id).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.Hidden{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return err
	}

	if s.search != nil {
		s.search.ItemRemoved(id)
	}
	utils.GetCache().Delete(frontPageCacheKey(1))
	return nil
}

// Get loads one item. Dead items 404 unless the viewer can see dead content.
func (s *ItemService) Get(id string, showDead bool) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if item.Dead && !showDead {
		return nil, models.ErrNotFound
	}
	return &item, nil
}

func frontPageCacheKey(page int) string {
	return fmt.Sprintf("items:front:page:%d", page)
}

// List returns a score-ordered page. Dead items are excluded unless the
// viewer has show_dead; the viewer's hidden items are always excluded.
// Page 1 for anonymous viewers is served from the shared cache.
func (s *ItemService) List(page int, viewer string, showDead bool) ([]models.Item, error) {
	if page < 1 {
		page = 1
	}

	cacheable := viewer == "" && !showDead && page == 1
	if cacheable {
		if cached := utils.GetCache().Get(frontPageCacheKey(page)); cached != nil {
			if items, ok := cached.([]models.Item); ok {
				return items, nil
			}
		}
	}

	q := s.db.Model(&models.Item{})
	if !showDead {
		q = q.Where("dead = ?", false)
	}
	if viewer != "" {
		q = q.Where("id NOT IN (?)",
			s.db.Model(&models.Hidden{}).Select("item_id").Where("username = ?", viewer))
	}

	var items []models.Item
	err := q.Order("score DESC, created_at DESC").
		Limit(ListPageSize).
		Offset((page - 1) * ListPageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	if cacheable {
		utils.GetCache().Set(frontPageCacheKey(page), items, time.Minute)
	}
	return items, nil
}
