package models

import (
	"time"

	"gorm.io/gorm"
)

// Public access modes for a list.
const (
	PublicAccessNone    = "none"
	PublicAccessMembers = "members"
	PublicAccessAnyone  = "anyone"
)

// Sort modes for list items.
const (
	SortManual  = "manual"
	SortVotes   = "votes"
	SortRatings = "ratings"
	SortShuffle = "shuffle"
)

// List represents a shareable list. The owner is tracked via UserID and is
// never duplicated as a ListMember row.
type List struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"index;not null" json:"user_id"`
	Name             string         `gorm:"size:200;not null" json:"name"`
	Description      string         `gorm:"size:1000" json:"description"`
	PublicAccessMode string         `gorm:"size:20;default:none" json:"public_access_mode"` // none, members, anyone
	Settings         *ListSettings  `gorm:"foreignKey:ListID" json:"settings,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// ListSettings holds per-list feature toggles. Exactly one row exists per
// list, created together with the list.
type ListSettings struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	ListID            uint   `gorm:"uniqueIndex;not null" json:"list_id"`
	EnableStatus      bool   `gorm:"default:false" json:"enable_status"`
	EnableVoting      bool   `gorm:"default:false" json:"enable_voting"`
	EnableDownvote    bool   `gorm:"default:false" json:"enable_downvote"`
	EnableRating      bool   `gorm:"default:false" json:"enable_rating"`
	EnableShuffle     bool   `gorm:"default:false" json:"enable_shuffle"`
	EnableOrdering    bool   `gorm:"default:false" json:"enable_ordering"`
	EnableComments    bool   `gorm:"default:true" json:"enable_comments"`
	AllowMultipleTags bool   `gorm:"default:false" json:"allow_multiple_tags"`
	SortBy            string `gorm:"size:20;default:manual" json:"sort_by"` // manual, votes, ratings, shuffle
}

// ListStatus is a custom item status defined per list.
type ListStatus struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ListID   uint   `gorm:"index;not null" json:"list_id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Position int    `gorm:"default:0" json:"position"`
}

func (List) TableName() string         { return "lists" }
func (ListSettings) TableName() string { return "list_settings" }
func (ListStatus) TableName() string   { return "list_statuses" }
