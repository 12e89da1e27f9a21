package models

import (
	"time"
)

// Member roles, ordered weakest to strongest. The list owner is not stored
// as a member row; RoleOwner is a sentinel that outranks every stored role.
const (
	RoleView  = "view"
	RoleEdit  = "edit"
	RoleAdmin = "admin"
	RoleOwner = "owner" // sentinel, never persisted
)

var roleRank = map[string]int{
	RoleView:  1,
	RoleEdit:  2,
	RoleAdmin: 3,
	RoleOwner: 4,
}

// ValidRole reports whether role is one of the storable member roles.
func ValidRole(role string) bool {
	return role == RoleView || role == RoleEdit || role == RoleAdmin
}

// RoleAtLeast reports whether role grants at least the authority of min.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// ListMember records a user's membership in a list. The composite unique
// index is what makes invite redemption idempotent: a second grant for the
// same (list, user) pair conflicts instead of inserting.
type ListMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListID    uint      `gorm:"uniqueIndex:idx_list_user;not null" json:"list_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_list_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:20;default:view" json:"role"` // view, edit, admin
	InvitedBy *uint     `json:"invited_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ListMember) TableName() string { return "list_members" }
