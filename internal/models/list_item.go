package models

import (
	"time"

	"gorm.io/gorm"
)

// ListItem is an entry in a list. Position is assigned at creation (max
// existing + 1). Upvotes is a denormalized signed total over the item's vote
// rows; both columns are mutated only through their services, never set
// directly from request payloads.
type ListItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ListID      uint           `gorm:"index;not null" json:"list_id"`
	UserID      uint           `gorm:"not null" json:"user_id"`
	Title       string         `gorm:"size:500;not null" json:"title"`
	Description string         `gorm:"size:2000" json:"description"`
	URL         string         `gorm:"size:1000" json:"url"`
	Status      string         `gorm:"size:100" json:"status"`
	Tags        string         `gorm:"size:1000" json:"tags"` // comma separated
	Completed   bool           `gorm:"default:false" json:"completed"`
	Position    int            `gorm:"default:0" json:"position"`
	Upvotes     int            `gorm:"default:0" json:"upvotes"`
	Metadata    string         `gorm:"type:text" json:"metadata"` // JSON blob
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ListItem) TableName() string { return "list_items" }
