package services

import (
	"testing"

	"github.com/listloop/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory store with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.ListSettings{},
		&models.ListStatus{},
		&models.ListItem{},
		&models.ListMember{},
		&models.ListInviteLink{},
		&models.ListVote{},
		&models.ListRating{},
		&models.ListItemComment{},
		&models.UserPushToken{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	// Shared cache keeps the same store alive across connections within a
	// test; wipe it so tests do not see each other's rows.
	for _, table := range []string{
		"user_push_tokens", "list_item_comments", "list_ratings", "list_votes",
		"list_invite_links", "list_members", "list_items", "list_statuses",
		"list_settings", "lists", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func createTestList(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.List {
	t.Helper()
	list := models.List{
		UserID:           ownerID,
		Name:             name,
		PublicAccessMode: models.PublicAccessNone,
	}
	if err := db.Create(&list).Error; err != nil {
		t.Fatalf("failed to create list %s: %v", name, err)
	}
	settings := models.ListSettings{
		ListID:         list.ID,
		EnableVoting:   true,
		EnableDownvote: true,
		EnableRating:   true,
		EnableOrdering: true,
		EnableComments: true,
		SortBy:         models.SortManual,
	}
	if err := db.Create(&settings).Error; err != nil {
		t.Fatalf("failed to create list settings: %v", err)
	}
	return &list
}

func createTestItem(t *testing.T, db *gorm.DB, listID, userID uint, title string) *models.ListItem {
	t.Helper()
	item := models.ListItem{
		ListID: listID,
		UserID: userID,
		Title:  title,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to create item %s: %v", title, err)
	}
	return &item
}

func addTestMember(t *testing.T, db *gorm.DB, listID, userID uint, role string) *models.ListMember {
	t.Helper()
	member := models.ListMember{
		ListID: listID,
		UserID: userID,
		Role:   role,
	}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
	return &member
}

// queueRecorder captures enqueued tasks for assertions.
type queueRecorder struct {
	tasks []*NotifyTask
}

func (q *queueRecorder) Enqueue(task *NotifyTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *queueRecorder) IsAsync() bool { return false }
func (q *queueRecorder) Close() error  { return nil }
