package services

import (
	"errors"

	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/response"
	"gorm.io/gorm"
)

// VoteService maintains per-user vote rows and the denormalized upvote total
// on list items, plus star ratings. The total is only ever mutated through
// relative SQL expressions so concurrent voters cannot lose each other's
// updates.
type VoteService struct {
	db     *gorm.DB
	cache  *ItemCache
	events *EventHub
}

func NewVoteService(db *gorm.DB, cache *ItemCache, events *EventHub) *VoteService {
	return &VoteService{db: db, cache: cache, events: events}
}

// Cast records, flips, or clears the acting user's vote on an item.
// direction is +1, -1, or 0 to clear. The vote row and the item's total move
// together in one transaction:
//   - no existing row: insert, total += direction
//   - same direction again, or clear: delete, total -= stored direction
//   - opposite direction: update row, total += 2*direction
func (s *VoteService) Cast(userID, itemID uint, direction int) error {
	if userID == 0 {
		return response.NewUnauthorized("you must be signed in to vote")
	}
	if direction != models.VoteUp && direction != models.VoteDown && direction != 0 {
		return response.NewBadRequest("vote direction must be 1, -1 or 0")
	}

	var listID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.ListItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("item not found")
			}
			return err
		}
		listID = item.ListID

		list, err := loadList(tx, item.ListID)
		if err != nil {
			return err
		}
		if err := requireReadAccess(tx, list, userID); err != nil {
			return err
		}

		var settings models.ListSettings
		if err := tx.Where("list_id = ?", list.ID).First(&settings).Error; err == nil {
			if !settings.EnableVoting {
				return response.NewForbidden("voting is disabled for this list")
			}
			if direction == models.VoteDown && !settings.EnableDownvote {
				return response.NewForbidden("downvoting is disabled for this list")
			}
		}

		var existing models.ListVote
		findErr := tx.Where("list_item_id = ? AND user_id = ?", itemID, userID).
			First(&existing).Error

		var delta int
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if direction == 0 {
				// Nothing to clear.
				return nil
			}
			vote := models.ListVote{ListItemID: itemID, UserID: userID, VoteType: direction}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			delta = direction

		case findErr != nil:
			return findErr

		case direction == 0 || existing.VoteType == direction:
			// Toggle off / explicit clear: remove the row and undo its contribution.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -existing.VoteType

		default:
			// Direction flip: old contribution out, new one in, one step.
			if err := tx.Model(&existing).Update("vote_type", direction).Error; err != nil {
				return err
			}
			delta = 2 * direction
		}

		return tx.Model(&models.ListItem{}).Where("id = ?", itemID).
			UpdateColumn("upvotes", gorm.Expr("upvotes + ?", delta)).Error
	})
	if err != nil {
		return err
	}

	// Staleness self-heals on next read; both of these are fire-and-forget.
	s.cache.InvalidateList(listID)
	s.events.Publish(ListEvent{ListID: listID, Type: EventItemVoted, ItemID: itemID, ActorID: userID})
	return nil
}

// Rate upserts the acting user's 1-5 star rating for an item. There is no
// clear operation; a new rating overwrites the old one. No aggregate column
// is maintained for ratings.
func (s *VoteService) Rate(userID, itemID uint, rating int) error {
	if userID == 0 {
		return response.NewUnauthorized("you must be signed in to rate")
	}
	if rating < 1 || rating > 5 {
		return response.NewBadRequest("rating must be between 1 and 5")
	}

	var listID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.ListItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("item not found")
			}
			return err
		}
		listID = item.ListID

		list, err := loadList(tx, item.ListID)
		if err != nil {
			return err
		}
		if err := requireReadAccess(tx, list, userID); err != nil {
			return err
		}

		var settings models.ListSettings
		if err := tx.Where("list_id = ?", list.ID).First(&settings).Error; err == nil && !settings.EnableRating {
			return response.NewForbidden("ratings are disabled for this list")
		}

		var existing models.ListRating
		findErr := tx.Where("list_item_id = ? AND user_id = ?", itemID, userID).
			First(&existing).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return tx.Create(&models.ListRating{
				ListItemID: itemID,
				UserID:     userID,
				Rating:     rating,
			}).Error
		}
		if findErr != nil {
			return findErr
		}
		return tx.Model(&existing).Update("rating", rating).Error
	})
	if err != nil {
		return err
	}

	s.cache.InvalidateList(listID)
	s.events.Publish(ListEvent{ListID: listID, Type: EventItemRated, ItemID: itemID, ActorID: userID})
	return nil
}

// VoteTotal recomputes an item's total from its vote rows. Used to verify or
// repair the denormalized column; reads normally trust ListItem.Upvotes.
func (s *VoteService) VoteTotal(itemID uint) (int, error) {
	var total *int
	err := s.db.Model(&models.ListVote{}).
		Where("list_item_id = ?", itemID).
		Select("SUM(vote_type)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
