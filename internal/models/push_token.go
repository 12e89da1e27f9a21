package models

import (
	"time"
)

// UserPushToken maps a user to a device push token. A user may hold several
// tokens (one per device); the same token re-registered for the same user is
// an upsert, not a duplicate.
type UserPushToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_token;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex:idx_user_token;size:255;not null" json:"token"`
	Platform  string    `gorm:"size:20" json:"platform"` // ios, android
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserPushToken) TableName() string { return "user_push_tokens" }
