package services

import (
	"testing"

	"kindling/internal/db"
	"kindling/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema. Max one open
// connection so every query sees the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := g.DB()
	if err != nil {
		t.Fatalf("raw handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(g); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return g
}

// seedUser inserts a user directly, skipping the bcrypt cost of Register.
func seedUser(t *testing.T, g *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "not-a-real-hash"}
	if err := g.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return &user
}

func seedModerator(t *testing.T, g *gorm.DB, username string) *models.User {
	t.Helper()
	user := seedUser(t, g, username)
	if err := g.Model(user).UpdateColumn("is_moderator", true).Error; err != nil {
		t.Fatalf("promote %s: %v", username, err)
	}
	user.IsModerator = true
	return user
}

// seedItem submits an item through the service so invariants (implicit point,
// author karma) hold.
func seedItem(t *testing.T, g *gorm.DB, username, title string) *models.Item {
	t.Helper()
	svc := NewItemService(g, nil, nil)
	item, err := svc.Create(CreateItemParams{
		Username: username,
		Title:    title,
		URL:      "https://example.com/" + title,
	})
	if err != nil {
		t.Fatalf("seed item %q: %v", title, err)
	}
	return item
}

// seedComment posts a comment through the service.
func seedComment(t *testing.T, g *gorm.DB, username, itemID string, parentID *string) *models.Comment {
	t.Helper()
	svc := NewCommentService(g, nil)
	comment, err := svc.Create(CreateCommentParams{
		Username:        username,
		ItemID:          itemID,
		ParentCommentID: parentID,
		Text:            "a comment",
	})
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return comment
}

func userKarma(t *testing.T, g *gorm.DB, username string) int {
	t.Helper()
	var user models.User
	if err := g.First(&user, "username = ?", username).Error; err != nil {
		t.Fatalf("load user %s: %v", username, err)
	}
	return user.Karma
}

func itemPoints(t *testing.T, g *gorm.DB, id string) int {
	t.Helper()
	var item models.Item
	if err := g.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("load item %s: %v", id, err)
	}
	return item.Points
}

func commentPoints(t *testing.T, g *gorm.DB, id string) int {
	t.Helper()
	var comment models.Comment
	if err := g.First(&comment, "id = ?", id).Error; err != nil {
		t.Fatalf("load comment %s: %v", id, err)
	}
	return comment.Points
}
