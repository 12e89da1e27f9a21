package models

import (
	"time"
)

// ListItemComment is a comment on a list item. Append-only except for
// author-initiated deletion, which removes the row outright.
type ListItemComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListItemID uint      `gorm:"index;not null" json:"list_item_id"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment    string    `gorm:"size:2000;not null" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ListItemComment) TableName() string { return "list_item_comments" }
