package models

import (
	"time"
)

// Vote directions.
const (
	VoteUp   = 1
	VoteDown = -1
)

// ListVote holds a user's current vote direction on an item, not a history.
// The (item, user) unique index caps it at one row per pair.
type ListVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListItemID uint      `gorm:"uniqueIndex:idx_item_user_vote;not null" json:"list_item_id"`
	UserID     uint      `gorm:"uniqueIndex:idx_item_user_vote;not null" json:"user_id"`
	VoteType   int       `gorm:"not null" json:"vote_type"` // +1 or -1
	CreatedAt  time.Time `json:"created_at"`
}

// ListRating holds a user's star rating (1-5) for an item. Overwritten on
// re-rate; no aggregate column is maintained for ratings.
type ListRating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ListItemID uint      `gorm:"uniqueIndex:idx_item_user_rating;not null" json:"list_item_id"`
	UserID     uint      `gorm:"uniqueIndex:idx_item_user_rating;not null" json:"user_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1..5
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ListVote) TableName() string   { return "list_votes" }
func (ListRating) TableName() string { return "list_ratings" }
