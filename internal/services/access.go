package services

import (
	"errors"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// roleFor resolves the authority a user holds on a list: the owner sentinel
// for the list's owner, the stored role for a member, or "" for everyone
// else. Ownership is tracked on the list row only; the owner never has a
// member row to consult.
func roleFor(db *gorm.DB, list *models.List, userID uint) (string, error) {
	if list.UserID == userID {
		return models.RoleOwner, nil
	}

	var member models.ListMember
	err := db.Where("list_id = ? AND user_id = ?", list.ID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

// loadList fetches a list or returns a NotFound application error.
func loadList(db *gorm.DB, listID uint) (*models.List, error) {
	var list models.List
	if err := db.First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("list not found")
		}
		return nil, err
	}
	return &list, nil
}

// requireRole ensures the user holds at least min authority on the list.
func requireRole(db *gorm.DB, list *models.List, userID uint, min string) error {
	role, err := roleFor(db, list, userID)
	if err != nil {
		return err
	}
	if role == "" || !models.RoleAtLeast(role, min) {
		return response.NewForbidden("insufficient permissions for this list")
	}
	return nil
}

// canReadList reports whether the user may read the list: owner, member, or
// the list is publicly visible.
func canReadList(db *gorm.DB, list *models.List, userID uint) (bool, error) {
	if list.PublicAccessMode == models.PublicAccessMembers ||
		list.PublicAccessMode == models.PublicAccessAnyone {
		return true, nil
	}

	role, err := roleFor(db, list, userID)
	if err != nil {
		return false, err
	}
	return role != "", nil
}

// requireReadAccess is the read-path counterpart of requireRole.
func requireReadAccess(db *gorm.DB, list *models.List, userID uint) error {
	ok, err := canReadList(db, list, userID)
	if err != nil {
		return err
	}
	if !ok {
		return response.NewForbidden("you do not have access to this list")
	}
	return nil
}
