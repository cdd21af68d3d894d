package services

import (
	"errors"
	"testing"

	"kindling/internal/models"
)

func TestCreateTopLevelComment(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")

	svc := NewCommentService(g, nil)
	comment, err := svc.Create(CreateCommentParams{
		Username: "bob",
		ItemID:   item.ID,
		Text:     "nice find",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !comment.IsParent {
		t.Fatal("top-level comment should be a parent")
	}
	if comment.RootCommentID != comment.ID {
		t.Fatalf("root = %q, want own id %q", comment.RootCommentID, comment.ID)
	}
	if comment.ParentItemTitle != "first" {
		t.Fatalf("frozen title = %q", comment.ParentItemTitle)
	}
	if comment.Points != 1 {
		t.Fatalf("points = %d, want 1", comment.Points)
	}

	var reloaded models.Item
	g.First(&reloaded, "id = ?", item.ID)
	if reloaded.CommentCount != 1 {
		t.Fatalf("comment_count = %d, want 1", reloaded.CommentCount)
	}
	if k := userKarma(t, g, "bob"); k != 1 {
		t.Fatalf("commenter karma = %d, want 1", k)
	}
}

func TestCreateReplyChainsToRoot(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	item := seedItem(t, g, "alice", "first")
	root := seedComment(t, g, "alice", item.ID, nil)
	reply := seedComment(t, g, "alice", item.ID, &root.ID)
	grand := seedComment(t, g, "alice", item.ID, &reply.ID)

	if reply.IsParent || grand.IsParent {
		t.Fatal("replies must not be parents")
	}
	if reply.RootCommentID != root.ID || grand.RootCommentID != root.ID {
		t.Fatalf("roots = %q, %q, want %q", reply.RootCommentID, grand.RootCommentID, root.ID)
	}

	var reloadedRoot models.Comment
	g.First(&reloadedRoot, "id = ?", root.ID)
	if reloadedRoot.ChildrenCount != 1 {
		t.Fatalf("root children_count = %d, want 1", reloadedRoot.ChildrenCount)
	}

	var reloadedItem models.Item
	g.First(&reloadedItem, "id = ?", item.ID)
	if reloadedItem.CommentCount != 3 {
		t.Fatalf("comment_count = %d, want 3", reloadedItem.CommentCount)
	}
}

func TestCreateReplyAcrossItemsRejected(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	itemA := seedItem(t, g, "alice", "first")
	itemB := seedItem(t, g, "alice", "second")
	rootA := seedComment(t, g, "alice", itemA.ID, nil)

	svc := NewCommentService(g, nil)
	_, err := svc.Create(CreateCommentParams{
		Username:        "alice",
		ItemID:          itemB.ID,
		ParentCommentID: &rootA.ID,
		Text:            "wrong thread",
	})
	if !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestCreateCommentOnDeadItemRejected(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	item := seedItem(t, g, "alice", "first")
	g.Model(&models.Item{}).Where("id = ?", item.ID).UpdateColumn("dead", true)

	svc := NewCommentService(g, nil)
	_, err := svc.Create(CreateCommentParams{
		Username: "alice",
		ItemID:   item.ID,
		Text:     "too late",
	})
	if !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestCreateEmptyCommentRejected(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	item := seedItem(t, g, "alice", "first")

	svc := NewCommentService(g, nil)
	_, err := svc.Create(CreateCommentParams{Username: "alice", ItemID: item.ID, Text: "   "})
	if !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}

func TestGetFiltersDeadChildren(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	item := seedItem(t, g, "alice", "first")
	root := seedComment(t, g, "alice", item.ID, nil)
	childA := seedComment(t, g, "alice", item.ID, &root.ID)
	childB := seedComment(t, g, "alice", item.ID, &root.ID)
	g.Model(&models.Comment{}).Where("id = ?", childB.ID).UpdateColumn("dead", true)

	svc := NewCommentService(g, nil)
	_, children, err := svc.Get(root.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(children) != 1 || children[0].ID != childA.ID {
		t.Fatalf("children = %v, want only live child", children)
	}

	_, children, err = svc.Get(root.ID, true)
	if err != nil {
		t.Fatalf("get with showDead: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2 with showDead", len(children))
	}
}

func TestDeleteRemovesSubtree(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")
	root := seedComment(t, g, "alice", item.ID, nil)
	reply := seedComment(t, g, "alice", item.ID, &root.ID)
	grand := seedComment(t, g, "alice", item.ID, &reply.ID)
	sibling := seedComment(t, g, "alice", item.ID, nil)

	votes := NewVoteService(g, nil)
	if _, err := votes.Cast("bob", models.ContentComment, grand.ID, models.VoteUp); err != nil {
		t.Fatalf("vote: %v", err)
	}

	svc := NewCommentService(g, nil)
	removed, err := svc.Delete(root.ID, "alice", false)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}

	var count int64
	g.Model(&models.Comment{}).Where("parent_item_id = ?", item.ID).Count(&count)
	if count != 1 {
		t.Fatalf("surviving comments = %d, want 1", count)
	}
	var survivor models.Comment
	g.First(&survivor, "parent_item_id = ?", item.ID)
	if survivor.ID != sibling.ID {
		t.Fatalf("survivor = %q, want sibling %q", survivor.ID, sibling.ID)
	}

	g.Model(&models.Vote{}).Where("content_id = ?", grand.ID).Count(&count)
	if count != 0 {
		t.Fatalf("orphan votes = %d, want 0", count)
	}

	var reloaded models.Item
	g.First(&reloaded, "id = ?", item.ID)
	if reloaded.CommentCount != 1 {
		t.Fatalf("comment_count = %d, want 1", reloaded.CommentCount)
	}
}

func TestDeleteCommentAuthorization(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "mallory")
	mod := seedModerator(t, g, "carol")
	item := seedItem(t, g, "alice", "first")

	svc := NewCommentService(g, nil)

	c1 := seedComment(t, g, "alice", item.ID, nil)
	if _, err := svc.Delete(c1.ID, "mallory", false); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	if _, err := svc.Delete(c1.ID, mod.Username, true); err != nil {
		t.Fatalf("moderator delete: %v", err)
	}
}
