package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/logger"
	"gorm.io/gorm"
)

// NotificationService turns queued change events into push notifications.
// It runs inside the worker (or inline behind SyncQueue) and resolves the
// recipient set per event type:
//
//	item_created  -> every list member except the actor
//	comment_added -> the item's creator plus everyone who commented on the
//	                 item before, except the comment's author
//	member_joined -> the new member only (a welcome)
type NotificationService struct {
	db   *gorm.DB
	push *PushService
}

func NewNotificationService(db *gorm.DB, push *PushService) *NotificationService {
	return &NotificationService{db: db, push: push}
}

// Process handles one notification task. Unknown events are dropped, not
// retried.
func (s *NotificationService) Process(ctx context.Context, task *NotifyTask) error {
	switch task.Event {
	case EventItemCreated:
		return s.notifyItemCreated(task)
	case EventCommentAdded:
		return s.notifyCommentAdded(task)
	case EventMemberJoined:
		return s.notifyMemberJoined(task)
	default:
		logger.Warn().Str("event", task.Event).Msg("unknown notification event, dropping")
		return nil
	}
}

func (s *NotificationService) notifyItemCreated(task *NotifyTask) error {
	var item models.ListItem
	if err := s.db.First(&item, task.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Item deleted before the task ran
			return nil
		}
		return err
	}

	listName, err := s.listName(task.ListID)
	if err != nil {
		return err
	}

	recipients, err := s.memberRecipients(task.ListID, task.ActorID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	return s.push.SendToUsers(recipients,
		listName,
		fmt.Sprintf("New item: %s", item.Title),
		map[string]any{"list_id": task.ListID, "item_id": task.ItemID})
}

func (s *NotificationService) notifyCommentAdded(task *NotifyTask) error {
	var comment models.ListItemComment
	if err := s.db.First(&comment, task.CommentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var item models.ListItem
	if err := s.db.First(&item, comment.ListItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	recipients, err := s.commentRecipients(&item, comment.UserID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	body := comment.Comment
	if len(body) > 120 {
		body = body[:117] + "..."
	}

	return s.push.SendToUsers(recipients,
		fmt.Sprintf("New comment on %s", item.Title),
		body,
		map[string]any{"list_id": item.ListID, "item_id": item.ID})
}

func (s *NotificationService) notifyMemberJoined(task *NotifyTask) error {
	if task.TargetUserID == 0 {
		return nil
	}

	listName, err := s.listName(task.ListID)
	if err != nil {
		return err
	}

	return s.push.SendToUsers([]uint{task.TargetUserID},
		"You joined a list",
		fmt.Sprintf("Welcome to %s", listName),
		map[string]any{"list_id": task.ListID})
}

// memberRecipients returns every member of a list plus its owner, minus the
// acting user.
func (s *NotificationService) memberRecipients(listID, actorID uint) ([]uint, error) {
	var list models.List
	if err := s.db.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var members []models.ListMember
	if err := s.db.Where("list_id = ?", listID).Find(&members).Error; err != nil {
		return nil, err
	}

	seen := map[uint]bool{actorID: true}
	var recipients []uint
	if !seen[list.UserID] {
		seen[list.UserID] = true
		recipients = append(recipients, list.UserID)
	}
	for _, m := range members {
		if !seen[m.UserID] {
			seen[m.UserID] = true
			recipients = append(recipients, m.UserID)
		}
	}
	return recipients, nil
}

// commentRecipients returns the item's creator and everyone who previously
// commented on the item, minus the new comment's author.
func (s *NotificationService) commentRecipients(item *models.ListItem, authorID uint) ([]uint, error) {
	var commenterIDs []uint
	if err := s.db.Model(&models.ListItemComment{}).
		Where("list_item_id = ?", item.ID).
		Distinct("user_id").
		Pluck("user_id", &commenterIDs).Error; err != nil {
		return nil, err
	}

	seen := map[uint]bool{authorID: true}
	var recipients []uint
	if !seen[item.UserID] {
		seen[item.UserID] = true
		recipients = append(recipients, item.UserID)
	}
	for _, id := range commenterIDs {
		if !seen[id] {
			seen[id] = true
			recipients = append(recipients, id)
		}
	}
	return recipients, nil
}

func (s *NotificationService) listName(listID uint) (string, error) {
	var list models.List
	if err := s.db.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "a list", nil
		}
		return "", err
	}
	return list.Name, nil
}
