package services

import (
	"errors"
	"fmt"
	"testing"

	"kindling/internal/models"
)

func TestCastUpvoteMovesPointsAndKarma(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")

	svc := NewVoteService(g, nil)
	out, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}

	if out.Previous != "none" || out.State != "up" || out.Delta != 1 {
		t.Fatalf("outcome = %+v", out)
	}
	if out.Points != 2 {
		t.Fatalf("points = %d, want 2", out.Points)
	}
	// submission karma +1, then bob's vote +1
	if k := userKarma(t, g, "alice"); k != 2 {
		t.Fatalf("author karma = %d, want 2", k)
	}
}

func TestCastSameStateIsNoOp(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")

	svc := NewVoteService(g, nil)
	if _, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteUp); err != nil {
		t.Fatalf("first cast: %v", err)
	}
	out, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("second cast: %v", err)
	}

	if !out.Unchanged || out.Delta != 0 {
		t.Fatalf("outcome = %+v, want unchanged", out)
	}
	if p := itemPoints(t, g, item.ID); p != 2 {
		t.Fatalf("points = %d, want 2", p)
	}
	if k := userKarma(t, g, "alice"); k != 2 {
		t.Fatalf("karma = %d, want 2", k)
	}
}

func TestCastSwitchUpToDown(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")

	svc := NewVoteService(g, nil)
	if _, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteUp); err != nil {
		t.Fatalf("upvote: %v", err)
	}
	out, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteDown)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}

	if out.Delta != -2 {
		t.Fatalf("delta = %d, want -2", out.Delta)
	}
	if out.Points != 0 {
		t.Fatalf("points = %d, want 0", out.Points)
	}
	if k := userKarma(t, g, "alice"); k != 0 {
		t.Fatalf("karma = %d, want 0", k)
	}
}

func TestCastNoneWithdrawsVote(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")

	svc := NewVoteService(g, nil)
	if _, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteUp); err != nil {
		t.Fatalf("upvote: %v", err)
	}
	out, err := svc.Cast("bob", models.ContentItem, item.ID, models.VoteNone)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	if out.Points != 1 {
		t.Fatalf("points = %d, want 1", out.Points)
	}
	var count int64
	g.Model(&models.Vote{}).Where("username = ?", "bob").Count(&count)
	if count != 0 {
		t.Fatalf("vote rows = %d, want 0", count)
	}

	state, err := svc.State("bob", models.ContentItem, item.ID)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != models.VoteNone {
		t.Fatalf("state = %v, want none", state)
	}
}

func TestCastOwnContentForbidden(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	item := seedItem(t, g, "alice", "first")

	svc := NewVoteService(g, nil)
	_, err := svc.Cast("alice", models.ContentItem, item.ID, models.VoteUp)
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if p := itemPoints(t, g, item.ID); p != 1 {
		t.Fatalf("points = %d, want 1", p)
	}
}

func TestVoteCommutativityAcrossVoters(t *testing.T) {
	// Final points and karma must be the sum of the two deltas no matter
	// which voter commits first.
	run := func(t *testing.T, first, second models.VoteState) (points, karma int) {
		g := newTestDB(t)
		seedUser(t, g, "alice")
		seedUser(t, g, "bob")
		seedUser(t, g, "carol")
		item := seedItem(t, g, "alice", "first")
		comment := seedComment(t, g, "alice", item.ID, nil)

		svc := NewVoteService(g, nil)
		if _, err := svc.Cast("bob", models.ContentComment, comment.ID, first); err != nil {
			t.Fatalf("first cast: %v", err)
		}
		if _, err := svc.Cast("carol", models.ContentComment, comment.ID, second); err != nil {
			t.Fatalf("second cast: %v", err)
		}
		return commentPoints(t, g, comment.ID), userKarma(t, g, "alice")
	}

	upDownPoints, upDownKarma := run(t, models.VoteUp, models.VoteDown)
	downUpPoints, downUpKarma := run(t, models.VoteDown, models.VoteUp)

	if upDownPoints != downUpPoints || upDownKarma != downUpKarma {
		t.Fatalf("order-dependent outcome: up-down = (%d, %d), down-up = (%d, %d)",
			upDownPoints, upDownKarma, downUpPoints, downUpKarma)
	}
	// seeded point 1, then +1 and -1 from the two voters
	if upDownPoints != 1 {
		t.Fatalf("points = %d, want 1", upDownPoints)
	}
	// item creation +1, comment creation +1, votes net 0
	if upDownKarma != 2 {
		t.Fatalf("karma = %d, want 2", upDownKarma)
	}
}

func TestCastMissingContent(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "bob")

	svc := NewVoteService(g, nil)
	if _, err := svc.Cast("bob", models.ContentItem, "no-such-id", models.VoteUp); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("item err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Cast("bob", models.ContentComment, "no-such-id", models.VoteDown); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("comment err = %v, want ErrNotFound", err)
	}
}

func TestCommentPointsClampAtFloor(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	item := seedItem(t, g, "alice", "first")
	comment := seedComment(t, g, "alice", item.ID, nil)

	svc := NewVoteService(g, nil)
	for i := 0; i < 7; i++ {
		voter := fmt.Sprintf("voter%d", i)
		seedUser(t, g, voter)
		if _, err := svc.Cast(voter, models.ContentComment, comment.ID, models.VoteDown); err != nil {
			t.Fatalf("downvote %d: %v", i, err)
		}
	}

	if p := commentPoints(t, g, comment.ID); p != models.CommentPointsFloor {
		t.Fatalf("points = %d, want floor %d", p, models.CommentPointsFloor)
	}
	// karma keeps tracking every vote even once display points hit the floor
	if k := userKarma(t, g, "alice"); k != 2-7 {
		t.Fatalf("karma = %d, want %d", k, 2-7)
	}
}

func TestCommentVoteReachesOwningItemRanking(t *testing.T) {
	g := newTestDB(t)
	seedUser(t, g, "alice")
	seedUser(t, g, "bob")
	item := seedItem(t, g, "alice", "first")
	comment := seedComment(t, g, "alice", item.ID, nil)

	svc := NewVoteService(g, nil)
	if _, err := svc.Cast("bob", models.ContentComment, comment.ID, models.VoteUp); err != nil {
		t.Fatalf("cast: %v", err)
	}

	var vote models.Vote
	if err := g.First(&vote, "username = ? AND content_id = ?", "bob", comment.ID).Error; err != nil {
		t.Fatalf("load vote: %v", err)
	}
	if vote.ParentItemID != item.ID {
		t.Fatalf("parent item = %q, want %q", vote.ParentItemID, item.ID)
	}
}
