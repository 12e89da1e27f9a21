package services

import (
	"testing"

	"github.com/listloop/backend/internal/models"
)

func TestCreateListWithDefaultSettings(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	svc := NewListService(db)

	list, err := svc.Create(owner.ID, &CreateListRequest{Name: "groceries"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if list.PublicAccessMode != models.PublicAccessNone {
		t.Errorf("public_access_mode = %q, want %q", list.PublicAccessMode, models.PublicAccessNone)
	}
	if list.Settings == nil {
		t.Fatal("expected settings to be created with the list")
	}
	if !list.Settings.EnableVoting || !list.Settings.EnableComments || list.Settings.SortBy != models.SortManual {
		t.Errorf("unexpected default settings %+v", list.Settings)
	}
	if list.Settings.EnableDownvote || list.Settings.EnableRating {
		t.Error("downvoting and rating should be off by default")
	}
}

func TestCreateListInvalidAccessMode(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	svc := NewListService(db)

	_, err := svc.Create(owner.ID, &CreateListRequest{Name: "x", PublicAccessMode: "everyone"})
	if err == nil {
		t.Error("expected error for invalid access mode, got nil")
	}
}

func TestGetListAccess(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	outsider := createTestUser(t, db, "outsider")
	svc := NewListService(db)

	private := createTestList(t, db, owner.ID, "private")

	if _, err := svc.Get(private.ID, owner.ID); err != nil {
		t.Errorf("owner Get failed: %v", err)
	}
	if _, err := svc.Get(private.ID, outsider.ID); err == nil {
		t.Error("expected forbidden error for outsider, got nil")
	}

	db.Model(&models.List{}).Where("id = ?", private.ID).
		Update("public_access_mode", models.PublicAccessAnyone)
	if _, err := svc.Get(private.ID, outsider.ID); err != nil {
		t.Errorf("outsider Get failed on public list: %v", err)
	}
}

func TestUpdateListOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	admin := createTestUser(t, db, "admin")
	svc := NewListService(db)

	list := createTestList(t, db, owner.ID, "old name")
	addTestMember(t, db, list.ID, admin.ID, models.RoleAdmin)

	name := "new name"
	if _, err := svc.Update(list.ID, admin.ID, &UpdateListRequest{Name: &name}); err == nil {
		t.Error("expected forbidden error for admin member, got nil")
	}

	updated, err := svc.Update(list.ID, owner.ID, &UpdateListRequest{Name: &name})
	if err != nil {
		t.Fatalf("owner Update failed: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name = %q, want %q", updated.Name, name)
	}
}

func TestDeleteListOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewListService(db)

	list := createTestList(t, db, owner.ID, "doomed")
	addTestMember(t, db, list.ID, member.ID, models.RoleAdmin)

	if err := svc.Delete(list.ID, member.ID); err == nil {
		t.Error("expected forbidden error, got nil")
	}
	if err := svc.Delete(list.ID, owner.ID); err != nil {
		t.Fatalf("owner Delete failed: %v", err)
	}
	if _, err := svc.Get(list.ID, owner.ID); err == nil {
		t.Error("expected not found after delete, got nil")
	}
}

func TestSharedWithReturnsJoinedLists(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	member := createTestUser(t, db, "member")
	svc := NewListService(db)

	mine := createTestList(t, db, member.ID, "mine")
	joined := createTestList(t, db, owner.ID, "joined")
	addTestMember(t, db, joined.ID, member.ID, models.RoleView)

	shared, err := svc.SharedWith(member.ID)
	if err != nil {
		t.Fatalf("SharedWith failed: %v", err)
	}
	if len(shared) != 1 || shared[0].ID != joined.ID {
		t.Errorf("shared = %+v, want only list %d", shared, joined.ID)
	}

	own, err := svc.Mine(member.ID)
	if err != nil {
		t.Fatalf("Mine failed: %v", err)
	}
	if len(own) != 1 || own[0].ID != mine.ID {
		t.Errorf("mine = %+v, want only list %d", own, mine.ID)
	}
}

func TestUpdateSettingsAdminAllowed(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	admin := createTestUser(t, db, "admin")
	svc := NewListService(db)

	list := createTestList(t, db, owner.ID, "settings")
	addTestMember(t, db, list.ID, admin.ID, models.RoleAdmin)

	off := false
	on := true
	sort := models.SortVotes
	settings, err := svc.UpdateSettings(list.ID, admin.ID, &UpdateSettingsRequest{
		EnableComments: &off,
		EnableRating:   &on,
		SortBy:         &sort,
	})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if settings.EnableComments {
		t.Error("enable_comments should be off")
	}
	if !settings.EnableRating {
		t.Error("enable_rating should be on")
	}
	if settings.SortBy != models.SortVotes {
		t.Errorf("sort_by = %q, want %q", settings.SortBy, models.SortVotes)
	}
}

func TestUpdateSettingsInvalidSort(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	svc := NewListService(db)

	list := createTestList(t, db, owner.ID, "settings")
	bad := "alphabetical"
	if _, err := svc.UpdateSettings(list.ID, owner.ID, &UpdateSettingsRequest{SortBy: &bad}); err == nil {
		t.Error("expected error for invalid sort_by, got nil")
	}
}

func TestStatusLifecycle(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	svc := NewListService(db)

	list := createTestList(t, db, owner.ID, "tasks")

	todo, err := svc.CreateStatus(list.ID, owner.ID, "todo")
	if err != nil {
		t.Fatalf("CreateStatus failed: %v", err)
	}
	done, err := svc.CreateStatus(list.ID, owner.ID, "done")
	if err != nil {
		t.Fatalf("CreateStatus failed: %v", err)
	}
	if todo.Position != 1 || done.Position != 2 {
		t.Errorf("positions = %d, %d, want 1, 2", todo.Position, done.Position)
	}

	statuses, err := svc.Statuses(list.ID, owner.ID)
	if err != nil {
		t.Fatalf("Statuses failed: %v", err)
	}
	if len(statuses) != 2 {
		t.Errorf("statuses = %d, want 2", len(statuses))
	}

	if err := svc.DeleteStatus(list.ID, todo.ID, owner.ID); err != nil {
		t.Fatalf("DeleteStatus failed: %v", err)
	}
	if err := svc.DeleteStatus(list.ID, 99999, owner.ID); err == nil {
		t.Error("expected not found for unknown status, got nil")
	}
}
