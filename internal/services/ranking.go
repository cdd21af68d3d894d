package services

import (
	"log"
	"sync"
	"time"

	"kindling/internal/models"
	"kindling/internal/utils"

	"gorm.io/gorm"
)

// RankingService recomputes item scores off the request path. Casts and
// comments enqueue the owning item; a background worker batches the
// recomputes. Recompute reads a consistent snapshot in one transaction and
// writes the score with a single UPDATE, so it can run alongside votes
// without serializing with them.
type RankingService struct {
	db        *gorm.DB
	queue     chan string
	pending   map[string]bool
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

// NewRankingService builds the service and starts its worker. Call once at
// startup and pass the handle around; there is no hidden singleton.
func NewRankingService(db *gorm.DB) *RankingService {
	s := &RankingService{
		db:      db,
		queue:   make(chan string, 1000),
		pending: make(map[string]bool),
		done:    make(chan struct{}),
	}
	go s.worker()
	return s
}

// Close stops the background worker. Safe to call more than once; scheduling
// after Close only fills the queue, nothing drains it.
func (s *RankingService) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// ScheduleUpdate queues an item for recompute, deduplicating bursts.
func (s *RankingService) ScheduleUpdate(itemID string) {
	s.mu.Lock()
	if s.pending[itemID] {
		s.mu.Unlock()
		return
	}
	s.pending[itemID] = true
	s.mu.Unlock()

	select {
	case s.queue <- itemID:
	default:
		s.mu.Lock()
		delete(s.pending, itemID)
		s.mu.Unlock()
		log.Printf("ranking queue full, skipping item %s", itemID)
	}
}

func (s *RankingService) worker() {
	batch := make([]string, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case itemID := <-s.queue:
			batch = append(batch, itemID)
			if len(batch) >= 50 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.processBatch(batch)
				batch = batch[:0]
			}
		case <-s.done:
			return
		}
	}
}

func (s *RankingService) processBatch(itemIDs []string) {
	for _, id := range itemIDs {
		s.Recompute(id)
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}
}

// Recompute reads the item's points, age, comment and favorite counts in a
// single read transaction and writes the derived score. Idempotent; safe to
// run concurrently with vote casts.
func (s *RankingService) Recompute(itemID string) {
	var item models.Item
	var favorites int64

	err := inTx(s.db, func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Favorite{}).
			Where("item_id = ?", itemID).Count(&favorites).Error
	})
	if err != nil {
		log.Printf("score recompute skipped, item %s: %v", itemID, err)
		return
	}

	score := utils.CalculateScore(item.CreatedAt, item.Points, int(favorites), item.CommentCount)
	if err := s.db.Model(&models.Item{}).Where("id = ?", itemID).
		UpdateColumn("score", score).Error; err != nil {
		log.Printf("score update failed, item %s: %v", itemID, err)
	}
}

// StartScheduled refreshes recent and top items every interval (ten minutes
// in production). Returns a stop function.
func (s *RankingService) StartScheduled(interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.refreshHot()
			case <-done:
				return
			case <-s.done:
				return
			}
		}
	}()
	return func() { close(done) }
}

// refreshHot recomputes items from the last 7 days plus the current top 30,
// deduplicated while walking.
func (s *RankingService) refreshHot() {
	processed := make(map[string]bool)
	count := 0

	sevenDaysAgo := time.Now().AddDate(0, 0, -7)
	var recent []models.Item
	s.db.Where("created_at >= ?", sevenDaysAgo).Select("id").Find(&recent)
	for _, it := range recent {
		s.Recompute(it.ID)
		processed[it.ID] = true
		count++
	}

	var top []models.Item
	s.db.Order("score DESC").Limit(30).Select("id").Find(&top)
	for _, it := range top {
		if !processed[it.ID] {
			s.Recompute(it.ID)
			count++
		}
	}

	log.Printf("scheduled score refresh updated %d items", count)
}
