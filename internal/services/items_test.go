package services

import (
	"testing"

	"github.com/listloop/backend/internal/models"
	"gorm.io/gorm"
)

func newItemFixture(t *testing.T) (*ItemService, *gorm.DB, *models.List, *models.User, *queueRecorder) {
	t.Helper()
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	list := createTestList(t, db, owner.ID, "reading")
	queue := &queueRecorder{}
	svc := NewItemService(db, NewItemCache(16), NewEventHub(), queue)
	return svc, db, list, owner, queue
}

func TestCreateItemAssignsPosition(t *testing.T) {
	svc, _, list, owner, _ := newItemFixture(t)

	first, err := svc.Create(list.ID, owner.ID, &CreateItemRequest{Title: "Dune"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := svc.Create(list.ID, owner.ID, &CreateItemRequest{Title: "Hyperion"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if first.Position != 1 {
		t.Errorf("first position = %d, want 1", first.Position)
	}
	if second.Position != 2 {
		t.Errorf("second position = %d, want 2", second.Position)
	}
}

func TestCreateItemEnqueuesNotification(t *testing.T) {
	svc, _, list, owner, queue := newItemFixture(t)

	item, err := svc.Create(list.ID, owner.ID, &CreateItemRequest{Title: "Dune"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(queue.tasks) != 1 {
		t.Fatalf("notify tasks = %d, want 1", len(queue.tasks))
	}
	task := queue.tasks[0]
	if task.Event != EventItemCreated || task.ItemID != item.ID || task.ActorID != owner.ID {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestCreateItemRequiresEditRole(t *testing.T) {
	svc, db, list, _, _ := newItemFixture(t)

	viewer := createTestUser(t, db, "viewer")
	addTestMember(t, db, list.ID, viewer.ID, models.RoleView)
	if _, err := svc.Create(list.ID, viewer.ID, &CreateItemRequest{Title: "Dune"}); err == nil {
		t.Error("expected forbidden error for view member, got nil")
	}

	editor := createTestUser(t, db, "editor")
	addTestMember(t, db, list.ID, editor.ID, models.RoleEdit)
	if _, err := svc.Create(list.ID, editor.ID, &CreateItemRequest{Title: "Dune"}); err != nil {
		t.Errorf("Create failed for edit member: %v", err)
	}
}

func TestCreateItemNonMemberForbidden(t *testing.T) {
	svc, db, list, _, _ := newItemFixture(t)

	outsider := createTestUser(t, db, "outsider")
	if _, err := svc.Create(list.ID, outsider.ID, &CreateItemRequest{Title: "Dune"}); err == nil {
		t.Error("expected forbidden error for non-member, got nil")
	}
}

func TestUpdateItemByCreator(t *testing.T) {
	svc, db, list, _, _ := newItemFixture(t)

	viewer := createTestUser(t, db, "viewer")
	addTestMember(t, db, list.ID, viewer.ID, models.RoleView)
	item := createTestItem(t, db, list.ID, viewer.ID, "Dune")

	title := "Dune Messiah"
	updated, err := svc.Update(item.ID, viewer.ID, &UpdateItemRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q, want %q", updated.Title, title)
	}
}

func TestUpdateItemViewMemberForbidden(t *testing.T) {
	svc, db, list, owner, _ := newItemFixture(t)

	item := createTestItem(t, db, list.ID, owner.ID, "Dune")
	viewer := createTestUser(t, db, "viewer")
	addTestMember(t, db, list.ID, viewer.ID, models.RoleView)

	done := true
	if _, err := svc.Update(item.ID, viewer.ID, &UpdateItemRequest{Completed: &done}); err == nil {
		t.Error("expected forbidden error for view member editing another's item, got nil")
	}
}

func TestDeleteItem(t *testing.T) {
	svc, db, list, owner, _ := newItemFixture(t)

	item := createTestItem(t, db, list.ID, owner.ID, "Dune")
	if err := svc.Delete(item.ID, owner.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var count int64
	db.Model(&models.ListItem{}).Where("id = ?", item.ID).Count(&count)
	if count != 0 {
		t.Error("item still visible after delete")
	}
}

func TestReorderRewritesPositions(t *testing.T) {
	svc, db, list, owner, _ := newItemFixture(t)

	a := createTestItem(t, db, list.ID, owner.ID, "a")
	b := createTestItem(t, db, list.ID, owner.ID, "b")
	c := createTestItem(t, db, list.ID, owner.ID, "c")

	if err := svc.Reorder(list.ID, owner.ID, []uint{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	items, err := svc.List(list.ID, owner.ID, models.SortManual)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := []uint{items[0].ID, items[1].ID, items[2].ID}
	want := []uint{c.ID, a.ID, b.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = item %d, want %d", i, got[i], want[i])
		}
	}
}

func TestListSortByVotes(t *testing.T) {
	svc, db, list, owner, _ := newItemFixture(t)

	low := createTestItem(t, db, list.ID, owner.ID, "low")
	high := createTestItem(t, db, list.ID, owner.ID, "high")
	db.Model(&models.ListItem{}).Where("id = ?", high.ID).Update("upvotes", 5)
	db.Model(&models.ListItem{}).Where("id = ?", low.ID).Update("upvotes", 1)

	items, err := svc.List(list.ID, owner.ID, models.SortVotes)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if items[0].ID != high.ID {
		t.Errorf("first item = %d, want highest voted %d", items[0].ID, high.ID)
	}
}

func TestListServesFromCache(t *testing.T) {
	svc, db, list, owner, _ := newItemFixture(t)

	createTestItem(t, db, list.ID, owner.ID, "cached")
	if _, err := svc.List(list.ID, owner.ID, models.SortManual); err != nil {
		t.Fatalf("first List failed: %v", err)
	}

	// A raw insert bypasses invalidation, so the stale cache still answers
	createTestItem(t, db, list.ID, owner.ID, "uncached")
	items, err := svc.List(list.ID, owner.ID, models.SortManual)
	if err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("items = %d, want 1 from cache", len(items))
	}

	svc.cache.InvalidateList(list.ID)
	items, _ = svc.List(list.ID, owner.ID, models.SortManual)
	if len(items) != 2 {
		t.Errorf("items after invalidation = %d, want 2", len(items))
	}
}

func TestListShuffleReturnsAllItems(t *testing.T) {
	svc, db, list, owner, _ := newItemFixture(t)

	for _, title := range []string{"a", "b", "c", "d"} {
		createTestItem(t, db, list.ID, owner.ID, title)
	}

	items, err := svc.List(list.ID, owner.ID, models.SortShuffle)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("items = %d, want 4", len(items))
	}
}
