package models

import (
	"time"

	"gorm.io/gorm"
)

// ListInviteLink is a shareable capability token granting membership in a
// list. UsedCount is non-decreasing and counts redemption attempts that
// passed validation, not distinct new members.
type ListInviteLink struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ListID    uint           `gorm:"index;not null" json:"list_id"`
	CreatedBy uint           `gorm:"not null" json:"created_by"`
	Role      string         `gorm:"size:20;not null" json:"role"` // view, edit, admin
	Token     string         `gorm:"uniqueIndex;size:64;not null" json:"token"`
	ExpiresAt *time.Time     `json:"expires_at"`
	MaxUses   *int           `json:"max_uses"`
	UsedCount int            `gorm:"not null;default:0" json:"used_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ListInviteLink) TableName() string { return "list_invite_links" }

// Expired reports whether the link's expiry, if set, has passed.
func (l *ListInviteLink) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && now.After(*l.ExpiresAt)
}

// Exhausted reports whether the link's use limit, if set, has been reached.
func (l *ListInviteLink) Exhausted() bool {
	return l.MaxUses != nil && l.UsedCount >= *l.MaxUses
}
