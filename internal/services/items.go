package services

import (
	"errors"
	"math/rand"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/logger"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// ItemService manages items within a list: CRUD, manual ordering, and the
// sorted read paths backing the client views.
type ItemService struct {
	db     *gorm.DB
	cache  *ItemCache
	events *EventHub
	queue  TaskQueue
}

func NewItemService(db *gorm.DB, cache *ItemCache, events *EventHub, queue TaskQueue) *ItemService {
	return &ItemService{db: db, cache: cache, events: events, queue: queue}
}

type CreateItemRequest struct {
	Title       string `json:"title" binding:"required,max=500"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	Tags        string `json:"tags"`
	Metadata    string `json:"metadata"`
}

type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	Status      *string `json:"status"`
	Tags        *string `json:"tags"`
	Completed   *bool   `json:"completed"`
	Metadata    *string `json:"metadata"`
}

// List returns a list's items under the requested sort mode. Results are
// served from the item cache when fresh. Shuffle bypasses the cache so every
// request reshuffles.
func (s *ItemService) List(listID, userID uint, sort string) ([]models.ListItem, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireReadAccess(s.db, list, userID); err != nil {
		return nil, err
	}

	if sort == "" {
		var settings models.ListSettings
		if err := s.db.Where("list_id = ?", listID).First(&settings).Error; err == nil {
			sort = settings.SortBy
		} else {
			sort = models.SortManual
		}
	}

	if sort == models.SortShuffle {
		items, err := s.fetchItems(listID, models.SortManual)
		if err != nil {
			return nil, err
		}
		rand.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
		return items, nil
	}

	if cached := s.cache.Get(listID, sort); cached != nil {
		return cached, nil
	}

	items, err := s.fetchItems(listID, sort)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listID, sort, items)
	return items, nil
}

func (s *ItemService) fetchItems(listID uint, sort string) ([]models.ListItem, error) {
	order := "position ASC, id ASC"
	switch sort {
	case models.SortVotes:
		order = "upvotes DESC, id ASC"
	case models.SortRatings:
		// Average rating computed in the store; unrated items sink
		var items []models.ListItem
		err := s.db.
			Select("list_items.*, COALESCE(AVG(list_ratings.rating), 0) AS avg_rating").
			Joins("LEFT JOIN list_ratings ON list_ratings.list_item_id = list_items.id").
			Where("list_items.list_id = ?", listID).
			Group("list_items.id").
			Order("avg_rating DESC, list_items.id ASC").
			Find(&items).Error
		return items, err
	}

	var items []models.ListItem
	err := s.db.Where("list_id = ?", listID).Order(order).Find(&items).Error
	return items, err
}

// Create appends an item at the end of a list. Requires the edit role.
func (s *ItemService) Create(listID, userID uint, req *CreateItemRequest) (*models.ListItem, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, userID, models.RoleEdit); err != nil {
		return nil, err
	}

	var item models.ListItem
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		tx.Model(&models.ListItem{}).
			Where("list_id = ?", listID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos)

		item = models.ListItem{
			ListID:      listID,
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			URL:         req.URL,
			Status:      req.Status,
			Tags:        req.Tags,
			Metadata:    req.Metadata,
			Position:    maxPos + 1,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateList(listID)
	s.events.Publish(ListEvent{ListID: listID, Type: EventItemCreated, ItemID: item.ID, ActorID: userID})
	s.enqueueItemNotify(list, &item, userID)

	return &item, nil
}

func (s *ItemService) enqueueItemNotify(list *models.List, item *models.ListItem, actorID uint) {
	task := &NotifyTask{
		Event:   EventItemCreated,
		ListID:  list.ID,
		ItemID:  item.ID,
		ActorID: actorID,
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Warn().Err(err).Uint("item_id", item.ID).
			Msg("failed to enqueue item notification")
	}
}

// Update modifies an item. Allowed for the item's creator and anyone holding
// the edit role or better.
func (s *ItemService) Update(itemID, userID uint, req *UpdateItemRequest) (*models.ListItem, error) {
	item, list, err := s.loadItem(itemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMutateAccess(list, item, userID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, response.NewBadRequest("title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
	}
	if req.Metadata != nil {
		updates["metadata"] = *req.Metadata
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.cache.InvalidateList(item.ListID)
	s.events.Publish(ListEvent{ListID: item.ListID, Type: EventItemUpdated, ItemID: item.ID, ActorID: userID})
	return item, nil
}

// Delete removes an item. Same authority as Update.
func (s *ItemService) Delete(itemID, userID uint) error {
	item, list, err := s.loadItem(itemID)
	if err != nil {
		return err
	}
	if err := s.requireMutateAccess(list, item, userID); err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return err
	}

	s.cache.InvalidateList(item.ListID)
	s.events.Publish(ListEvent{ListID: item.ListID, Type: EventItemDeleted, ItemID: item.ID, ActorID: userID})
	return nil
}

// Reorder rewrites manual positions from an ordered id slice. Edit role or
// better. Ids not belonging to the list are ignored.
func (s *ItemService) Reorder(listID, userID uint, orderedIDs []uint) error {
	list, err := loadList(s.db, listID)
	if err != nil {
		return err
	}
	if err := requireRole(s.db, list, userID, models.RoleEdit); err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&models.ListItem{}).
				Where("id = ? AND list_id = ?", id, listID).
				UpdateColumn("position", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateList(listID)
	s.events.Publish(ListEvent{ListID: listID, Type: EventItemUpdated, ActorID: userID})
	return nil
}

func (s *ItemService) loadItem(itemID uint) (*models.ListItem, *models.List, error) {
	var item models.ListItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, response.NewNotFound("item not found")
		}
		return nil, nil, err
	}
	list, err := loadList(s.db, item.ListID)
	if err != nil {
		return nil, nil, err
	}
	return &item, list, nil
}

func (s *ItemService) requireMutateAccess(list *models.List, item *models.ListItem, userID uint) error {
	if item.UserID == userID {
		return nil
	}
	return requireRole(s.db, list, userID, models.RoleEdit)
}
