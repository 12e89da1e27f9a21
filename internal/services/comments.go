package services

import (
	"errors"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/logger"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// CommentService manages the discussion thread under an item. Comments are
// append-only except for author deletion.
type CommentService struct {
	db     *gorm.DB
	queue  TaskQueue
	events *EventHub
}

func NewCommentService(db *gorm.DB, queue TaskQueue, events *EventHub) *CommentService {
	return &CommentService{db: db, queue: queue, events: events}
}

// List returns an item's comments oldest first.
func (s *CommentService) List(itemID, userID uint) ([]models.ListItemComment, error) {
	var item models.ListItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("item not found")
		}
		return nil, err
	}
	list, err := loadList(s.db, item.ListID)
	if err != nil {
		return nil, err
	}
	if err := requireReadAccess(s.db, list, userID); err != nil {
		return nil, err
	}

	var comments []models.ListItemComment
	err = s.db.Preload("User").
		Where("list_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Add appends a comment. Any member (or the owner) may comment if the list's
// settings allow comments.
func (s *CommentService) Add(itemID, userID uint, text string) (*models.ListItemComment, error) {
	if text == "" {
		return nil, response.NewBadRequest("comment cannot be empty")
	}
	if len(text) > 2000 {
		return nil, response.NewBadRequest("comment exceeds 2000 characters")
	}

	var item models.ListItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("item not found")
		}
		return nil, err
	}
	list, err := loadList(s.db, item.ListID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, userID, models.RoleView); err != nil {
		return nil, err
	}

	var settings models.ListSettings
	if err := s.db.Where("list_id = ?", list.ID).First(&settings).Error; err == nil && !settings.EnableComments {
		return nil, response.NewForbidden("comments are disabled for this list")
	}

	comment := models.ListItemComment{
		ListItemID: itemID,
		UserID:     userID,
		Comment:    text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	s.events.Publish(ListEvent{ListID: list.ID, Type: EventCommentAdded, ItemID: itemID, ActorID: userID})
	s.enqueueCommentNotify(list, &comment, userID)

	return &comment, nil
}

func (s *CommentService) enqueueCommentNotify(list *models.List, comment *models.ListItemComment, actorID uint) {
	task := &NotifyTask{
		Event:     EventCommentAdded,
		ListID:    list.ID,
		ItemID:    comment.ListItemID,
		CommentID: comment.ID,
		ActorID:   actorID,
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Warn().Err(err).Uint("comment_id", comment.ID).
			Msg("failed to enqueue comment notification")
	}
}

// Delete removes a comment. Author only.
func (s *CommentService) Delete(commentID, userID uint) error {
	var comment models.ListItemComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("comment not found")
		}
		return err
	}
	if comment.UserID != userID {
		return response.NewForbidden("only the author can delete a comment")
	}
	return s.db.Delete(&comment).Error
}
