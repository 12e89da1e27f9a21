package services

import (
	"errors"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// MemberService manages list memberships after they exist. New memberships
// are only ever created through invite redemption.
type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

// List returns a list's members with user info preloaded.
func (s *MemberService) List(listID, userID uint) ([]models.ListMember, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireReadAccess(s.db, list, userID); err != nil {
		return nil, err
	}

	var members []models.ListMember
	err = s.db.Preload("User").
		Where("list_id = ?", listID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

// UpdateRole changes a member's role. Owner or admin only, and the owner's
// authority cannot be assigned: it exists only as the list's user_id.
func (s *MemberService) UpdateRole(listID, memberID, actorID uint, role string) (*models.ListMember, error) {
	if !models.ValidRole(role) {
		return nil, response.NewBadRequest("role must be 'view', 'edit', or 'admin'")
	}

	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, actorID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var member models.ListMember
	if err := s.db.Where("id = ? AND list_id = ?", memberID, listID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("member not found")
		}
		return nil, err
	}

	if err := s.db.Model(&member).Update("role", role).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove deletes a membership. Admins can remove anyone; a member can always
// remove themselves (leave the list). The row is hard-deleted so the user
// can rejoin through a new invite.
func (s *MemberService) Remove(listID, memberID, actorID uint) error {
	list, err := loadList(s.db, listID)
	if err != nil {
		return err
	}

	var member models.ListMember
	if err := s.db.Where("id = ? AND list_id = ?", memberID, listID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("member not found")
		}
		return err
	}

	if member.UserID != actorID {
		if err := requireRole(s.db, list, actorID, models.RoleAdmin); err != nil {
			return err
		}
	}

	return s.db.Delete(&member).Error
}

// Leave removes the caller's own membership by list id.
func (s *MemberService) Leave(listID, userID uint) error {
	res := s.db.Where("list_id = ? AND user_id = ?", listID, userID).
		Delete(&models.ListMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound("you are not a member of this list")
	}
	return nil
}
