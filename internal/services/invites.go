package services

import (
	"errors"
	"time"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/internal/utils"
	"github.com/listloop/backend/pkg/logger"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Redemption failures. A token that never existed and a token that was
// deleted collapse into the same message so the API does not leak which
// tokens ever existed.
var (
	ErrInvalidInvite   = response.NewNotFound("Invalid or expired invite link")
	ErrInviteExpired   = response.NewGone("This invite link has expired")
	ErrInviteExhausted = response.NewGone("This invite link has reached its maximum uses")
)

// InviteService manages the lifecycle of shareable invite links: creation
// with role/expiry/use-limit policy, redemption, and housekeeping.
type InviteService struct {
	db     *gorm.DB
	queue  TaskQueue
	events *EventHub
}

func NewInviteService(db *gorm.DB, queue TaskQueue, events *EventHub) *InviteService {
	return &InviteService{db: db, queue: queue, events: events}
}

type CreateInviteRequest struct {
	Role         string `json:"role" binding:"required"`
	MaxUses      *int   `json:"max_uses"`
	ExpiresHours *int   `json:"expires_hours"`
}

// CreateLink mints a new invite link for a list. Only the owner or an admin
// member may create links. The token is unguessable; treat it as a
// capability, not a lookup key.
func (s *InviteService) CreateLink(listID, creatorID uint, req *CreateInviteRequest) (*models.ListInviteLink, error) {
	if !models.ValidRole(req.Role) {
		return nil, response.NewBadRequest("role must be 'view', 'edit', or 'admin'")
	}
	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return nil, response.NewBadRequest("max_uses must be positive")
	}
	if req.ExpiresHours != nil && *req.ExpiresHours <= 0 {
		return nil, response.NewBadRequest("expires_hours must be positive")
	}

	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, creatorID, models.RoleAdmin); err != nil {
		return nil, err
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, err
	}

	link := models.ListInviteLink{
		ListID:    listID,
		CreatedBy: creatorID,
		Role:      req.Role,
		Token:     token,
		MaxUses:   req.MaxUses,
	}
	if req.ExpiresHours != nil {
		expiresAt := time.Now().Add(time.Duration(*req.ExpiresHours) * time.Hour)
		link.ExpiresAt = &expiresAt
	}

	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Redeem validates a token and grants the caller membership in the link's
// list. The steps run in a fixed order:
//
//  1. token lookup (miss is indistinguishable from expiry)
//  2. expiry check
//  3. use-limit check
//  4. membership insert with ON CONFLICT (list_id, user_id) DO NOTHING;
//     a repeat redemption, a second link to the same list, or any other
//     pre-existing membership is absorbed as a no-op grant
//  5. atomic used_count increment
//
// Steps 4 and 5 are deliberately not one transaction: if the increment
// fails after the grant, the member keeps access and the link undercounts,
// which is safer than revoking access already given.
func (s *InviteService) Redeem(token string, userID uint) (uint, error) {
	if userID == 0 {
		return 0, response.NewUnauthorized("you must be signed in to join a list")
	}

	var link models.ListInviteLink
	if err := s.db.Where("token = ?", token).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidInvite
		}
		return 0, err
	}

	if link.Expired(time.Now()) {
		return 0, ErrInviteExpired
	}
	if link.Exhausted() {
		return 0, ErrInviteExhausted
	}

	member := models.ListMember{
		ListID:    link.ListID,
		UserID:    userID,
		Role:      link.Role,
		InvitedBy: &link.CreatedBy,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "list_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&member)
	if res.Error != nil {
		return 0, res.Error
	}
	granted := res.RowsAffected > 0

	// The count moves on every validated attempt, granted or not: used_count
	// tracks redemptions, not distinct members. An already-joined user
	// re-opening the link can therefore exhaust it.
	if err := s.db.Model(&models.ListInviteLink{}).Where("id = ?", link.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
		logger.Warn().Err(err).Uint("link_id", link.ID).
			Msg("membership granted but use count not incremented")
	}

	if granted {
		s.enqueueMemberNotify(&link, userID)
		s.events.Publish(ListEvent{ListID: link.ListID, Type: EventMemberJoined, ActorID: userID})
	}

	return link.ListID, nil
}

func (s *InviteService) enqueueMemberNotify(link *models.ListInviteLink, userID uint) {
	task := &NotifyTask{
		Event:        EventMemberJoined,
		ListID:       link.ListID,
		ActorID:      userID,
		TargetUserID: userID,
	}
	if err := s.queue.Enqueue(task); err != nil {
		logger.Warn().Err(err).Uint("list_id", link.ListID).
			Msg("failed to enqueue member notification")
	}
}

// ListLinks returns all invite links for a list (owner/admin only).
func (s *InviteService) ListLinks(listID, userID uint) ([]models.ListInviteLink, error) {
	list, err := loadList(s.db, listID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(s.db, list, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var links []models.ListInviteLink
	if err := s.db.Where("list_id = ?", listID).
		Order("created_at DESC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteLink revokes an invite link (owner/admin only).
func (s *InviteService) DeleteLink(linkID, userID uint) error {
	var link models.ListInviteLink
	if err := s.db.First(&link, linkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("invite link not found")
		}
		return err
	}

	list, err := loadList(s.db, link.ListID)
	if err != nil {
		return err
	}
	if err := requireRole(s.db, list, userID, models.RoleAdmin); err != nil {
		return err
	}

	return s.db.Delete(&link).Error
}

// CleanupExpired hard-deletes links whose expiry passed more than
// retentionDays ago. Returns the number of purged rows.
func (s *InviteService) CleanupExpired(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	res := s.db.Unscoped().
		Where("expires_at IS NOT NULL AND expires_at < ?", cutoff).
		Delete(&models.ListInviteLink{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
