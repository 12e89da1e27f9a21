package services

import (
	"testing"

	"github.com/listloop/backend/internal/models"
)

func TestUpdateMemberRole(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	row := addTestMember(t, db, list.ID, member.ID, models.RoleView)

	updated, err := svc.UpdateRole(list.ID, row.ID, owner.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole failed: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("role = %q, want %q", updated.Role, models.RoleAdmin)
	}
}

func TestUpdateMemberRoleRejectsOwnerSentinel(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	row := addTestMember(t, db, list.ID, member.ID, models.RoleView)

	if _, err := svc.UpdateRole(list.ID, row.ID, owner.ID, models.RoleOwner); err == nil {
		t.Error("expected error assigning owner role, got nil")
	}
}

func TestUpdateMemberRoleRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	editor := createTestUser(t, db, "editor")
	target := createTestUser(t, db, "target")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	addTestMember(t, db, list.ID, editor.ID, models.RoleEdit)
	row := addTestMember(t, db, list.ID, target.ID, models.RoleView)

	if _, err := svc.UpdateRole(list.ID, row.ID, editor.ID, models.RoleEdit); err == nil {
		t.Error("expected forbidden error for edit member, got nil")
	}
}

func TestRemoveMemberByAdmin(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	row := addTestMember(t, db, list.ID, member.ID, models.RoleView)

	if err := svc.Remove(list.ID, row.ID, owner.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	var count int64
	db.Model(&models.ListMember{}).Where("list_id = ?", list.ID).Count(&count)
	if count != 0 {
		t.Errorf("members = %d, want 0", count)
	}
}

func TestMemberCanRemoveSelf(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	row := addTestMember(t, db, list.ID, member.ID, models.RoleView)

	if err := svc.Remove(list.ID, row.ID, member.ID); err != nil {
		t.Fatalf("self Remove failed: %v", err)
	}
}

func TestMemberCannotRemoveOthers(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	viewA := createTestUser(t, db, "view_a")
	viewB := createTestUser(t, db, "view_b")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	addTestMember(t, db, list.ID, viewA.ID, models.RoleView)
	rowB := addTestMember(t, db, list.ID, viewB.ID, models.RoleView)

	if err := svc.Remove(list.ID, rowB.ID, viewA.ID); err == nil {
		t.Error("expected forbidden error, got nil")
	}
}

func TestLeaveAndRejoin(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewMemberService(db)

	list := createTestList(t, db, owner.ID, "club")
	addTestMember(t, db, list.ID, member.ID, models.RoleView)

	if err := svc.Leave(list.ID, member.ID); err != nil {
		t.Fatalf("Leave failed: %v", err)
	}
	if err := svc.Leave(list.ID, member.ID); err == nil {
		t.Error("expected not found on second Leave, got nil")
	}

	// The membership row is gone for good, so a fresh grant must not conflict
	invites := NewInviteService(db, &queueRecorder{}, NewEventHub())
	link, err := invites.CreateLink(list.ID, owner.ID, &CreateInviteRequest{Role: models.RoleView})
	if err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}
	if _, err := invites.Redeem(link.Token, member.ID); err != nil {
		t.Fatalf("rejoin Redeem failed: %v", err)
	}
}
