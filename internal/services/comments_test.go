package services

import (
	"strings"
	"testing"

	"github.com/listloop/backend/internal/models"
)

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "films")
	item := createTestItem(t, db, list.ID, owner.ID, "Alien")
	queue := &queueRecorder{}
	svc := NewCommentService(db, queue, NewEventHub())

	comment, err := svc.Add(item.ID, owner.ID, "a classic")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if comment.Comment != "a classic" {
		t.Errorf("comment = %q", comment.Comment)
	}

	if len(queue.tasks) != 1 || queue.tasks[0].Event != EventCommentAdded {
		t.Errorf("expected one comment_added task, got %+v", queue.tasks)
	}
	if queue.tasks[0].CommentID != comment.ID {
		t.Errorf("task comment_id = %d, want %d", queue.tasks[0].CommentID, comment.ID)
	}
}

func TestAddCommentDisabled(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "films")
	item := createTestItem(t, db, list.ID, owner.ID, "Alien")
	svc := NewCommentService(db, &queueRecorder{}, NewEventHub())

	db.Model(&models.ListSettings{}).
		Where("list_id = ?", list.ID).
		Update("enable_comments", false)

	if _, err := svc.Add(item.ID, owner.ID, "nope"); err == nil {
		t.Error("expected forbidden error with comments disabled, got nil")
	}
}

func TestAddCommentValidation(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "films")
	item := createTestItem(t, db, list.ID, owner.ID, "Alien")
	svc := NewCommentService(db, &queueRecorder{}, NewEventHub())

	if _, err := svc.Add(item.ID, owner.ID, ""); err == nil {
		t.Error("expected error for empty comment, got nil")
	}
	if _, err := svc.Add(item.ID, owner.ID, strings.Repeat("x", 2001)); err == nil {
		t.Error("expected error for oversized comment, got nil")
	}
}

func TestAddCommentNonMemberForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	outsider := createTestUser(t, db, "outsider")
	list := createTestList(t, db, owner.ID, "films")
	item := createTestItem(t, db, list.ID, owner.ID, "Alien")
	svc := NewCommentService(db, &queueRecorder{}, NewEventHub())

	if _, err := svc.Add(item.ID, outsider.ID, "hi"); err == nil {
		t.Error("expected forbidden error, got nil")
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	list := createTestList(t, db, owner.ID, "films")
	addTestMember(t, db, list.ID, member.ID, models.RoleView)
	item := createTestItem(t, db, list.ID, owner.ID, "Alien")
	svc := NewCommentService(db, &queueRecorder{}, NewEventHub())

	comment, err := svc.Add(item.ID, member.ID, "mine")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := svc.Delete(comment.ID, owner.ID); err == nil {
		t.Error("expected forbidden error for non-author (even the owner), got nil")
	}
	if err := svc.Delete(comment.ID, member.ID); err != nil {
		t.Fatalf("author Delete failed: %v", err)
	}
}

func TestListCommentsOrdered(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "films")
	item := createTestItem(t, db, list.ID, owner.ID, "Alien")
	svc := NewCommentService(db, &queueRecorder{}, NewEventHub())

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.Add(item.ID, owner.ID, text); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	comments, err := svc.List(item.ID, owner.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("comments = %d, want 3", len(comments))
	}
	if comments[0].Comment != "first" || comments[2].Comment != "third" {
		t.Error("comments not in creation order")
	}
}
