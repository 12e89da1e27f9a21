package services

import (
	"errors"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// ListService manages lists, their settings, and custom statuses.
type ListService struct {
	db *gorm.DB
}

func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

type CreateListRequest struct {
	Name             string `json:"name" binding:"required,max=200"`
	Description      string `json:"description"`
	PublicAccessMode string `json:"public_access_mode"`
}

type UpdateListRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	PublicAccessMode *string `json:"public_access_mode"`
}

type UpdateSettingsRequest struct {
	EnableStatus      *bool   `json:"enable_status"`
	EnableVoting      *bool   `json:"enable_voting"`
	EnableDownvote    *bool   `json:"enable_downvote"`
	EnableRating      *bool   `json:"enable_rating"`
	EnableShuffle     *bool   `json:"enable_shuffle"`
	EnableOrdering    *bool   `json:"enable_ordering"`
	EnableComments    *bool   `json:"enable_comments"`
	AllowMultipleTags *bool   `json:"allow_multiple_tags"`
	SortBy            *string `json:"sort_by"`
}

func validPublicAccessMode(mode string) bool {
	switch mode {
	case models.PublicAccessNone, models.PublicAccessMembers, models.PublicAccessAnyone:
		return true
	}
	return false
}

// Create stores a new list with default settings in one transaction.
func (s *ListService) Create(userID uint, req *CreateListRequest) (*models.List, error) {
	mode := req.PublicAccessMode
	if mode == "" {
		mode = models.PublicAccessNone
	}
	if !validPublicAccessMode(mode) {
		return nil, response.NewBadRequest("invalid public_access_mode")
	}

	list := models.List{
		UserID:           userID,
		Name:             req.Name,
		Description:      req.Description,
		PublicAccessMode: mode,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		settings := models.ListSettings{
			ListID:         list.ID,
			EnableVoting:   true,
			EnableOrdering: true,
			EnableComments: true,
			SortBy:         models.SortManual,
		}
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}
		list.Settings = &settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a list the caller may read, with settings preloaded.
func (s *ListService) Get(listID, userID uint) (*models.List, error) {
	var list models.List
	if err := s.db.Preload("Settings").First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("list not found")
		}
		return nil, err
	}
	if err := requireReadAccess(s.db, &list, userID); err != nil {
		return nil, err
	}
	return &list, nil
}

// Update modifies list attributes. Owner only.
func (s *ListService) Update(listID, userID uint, req *UpdateListRequest) (*models.List, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, response.NewForbidden("only the owner can update this list")
	}

	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, response.NewBadRequest("name cannot be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PublicAccessMode != nil {
		if !validPublicAccessMode(*req.PublicAccessMode) {
			return nil, response.NewBadRequest("invalid public_access_mode")
		}
		updates["public_access_mode"] = *req.PublicAccessMode
	}
	if len(updates) > 0 {
		if err := s.db.Model(list).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.Get(listID, userID)
}

// Delete soft-deletes a list. Owner only. Items, members and links remain in
// the store but are unreachable once the list row is gone.
func (s *ListService) Delete(listID, userID uint) error {
	list, err := loadList(s.db, listID)
	if err != nil {
		return err
	}
	if list.UserID != userID {
		return response.NewForbidden("only the owner can delete this list")
	}
	return s.db.Delete(list).Error
}

// Mine returns the lists the user owns.
func (s *ListService) Mine(userID uint) ([]models.List, error) {
	var lists []models.List
	err := s.db.Preload("Settings").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// SharedWith returns lists the user joined as a member.
func (s *ListService) SharedWith(userID uint) ([]models.List, error) {
	var lists []models.List
	err := s.db.Preload("Settings").
		Joins("JOIN list_members ON list_members.list_id = lists.id").
		Where("list_members.user_id = ?", userID).
		Order("lists.created_at DESC").
		Find(&lists).Error
	return lists, err
}

// Public returns lists open to everyone.
func (s *ListService) Public() ([]models.List, error) {
	var lists []models.List
	err := s.db.Preload("Settings").
		Where("public_access_mode = ?", models.PublicAccessAnyone).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// UpdateSettings modifies per-list behavior toggles. Owner or admin.
func (s *ListService) UpdateSettings(listID, userID uint, req *UpdateSettingsRequest) (*models.ListSettings, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var settings models.ListSettings
	if err := s.db.Where("list_id = ?", listID).First(&settings).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.EnableStatus != nil {
		updates["enable_status"] = *req.EnableStatus
	}
	if req.EnableVoting != nil {
		updates["enable_voting"] = *req.EnableVoting
	}
	if req.EnableDownvote != nil {
		updates["enable_downvote"] = *req.EnableDownvote
	}
	if req.EnableRating != nil {
		updates["enable_rating"] = *req.EnableRating
	}
	if req.EnableShuffle != nil {
		updates["enable_shuffle"] = *req.EnableShuffle
	}
	if req.EnableOrdering != nil {
		updates["enable_ordering"] = *req.EnableOrdering
	}
	if req.EnableComments != nil {
		updates["enable_comments"] = *req.EnableComments
	}
	if req.AllowMultipleTags != nil {
		updates["allow_multiple_tags"] = *req.AllowMultipleTags
	}
	if req.SortBy != nil {
		switch *req.SortBy {
		case models.SortManual, models.SortVotes, models.SortRatings, models.SortShuffle:
		default:
			return nil, response.NewBadRequest("invalid sort_by")
		}
		updates["sort_by"] = *req.SortBy
	}

	if len(updates) > 0 {
		if err := s.db.Model(&settings).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

// Statuses returns a list's custom statuses ordered by position.
func (s *ListService) Statuses(listID, userID uint) ([]models.ListStatus, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireReadAccess(s.db, list, userID); err != nil {
		return nil, err
	}

	var statuses []models.ListStatus
	err = s.db.Where("list_id = ?", listID).Order("position ASC").Find(&statuses).Error
	return statuses, err
}

// CreateStatus appends a custom status. Owner or admin.
func (s *ListService) CreateStatus(listID, userID uint, name string) (*models.ListStatus, error) {
	if name == "" {
		return nil, response.NewBadRequest("status name is required")
	}
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var maxPos int
	s.db.Model(&models.ListStatus{}).
		Where("list_id = ?", listID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos)

	status := models.ListStatus{
		ListID:   listID,
		Name:     name,
		Position: maxPos + 1,
	}
	if err := s.db.Create(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// DeleteStatus removes a custom status. Owner or admin.
func (s *ListService) DeleteStatus(listID, statusID, userID uint) error {
	list, err := loadList(s.db, listID)
	if err != nil {
		return err
	}
	if err := requireRole(s.db, list, userID, models.RoleAdmin); err != nil {
		return err
	}
	res := s.db.Where("list_id = ?", listID).Delete(&models.ListStatus{}, statusID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound("status not found")
	}
	return nil
}
