package services

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/listloop/backend/internal/models"
	"github.com/listloop/backend/pkg/logger"
)

// itemCacheTTL keeps reads fresh enough that a dropped invalidation heals
// quickly.
const itemCacheTTL = 30 * time.Second

// cachedItems wraps a listing result with its expiry.
type cachedItems struct {
	items     []models.ListItem
	expiresAt time.Time
}

// ItemCache is a small in-process LRU over per-list item listings. Votes,
// ratings and item mutations invalidate the owning list's entries;
// invalidation racing a concurrent reader is acceptable staleness.
type ItemCache struct {
	lruCache *lru.Cache[string, cachedItems]
}

// NewItemCache creates a cache holding up to size listings.
func NewItemCache(size int) *ItemCache {
	l, err := lru.New[string, cachedItems](size)
	if err != nil {
		logger.Fatalf("failed to create item cache: %v", err)
	}
	return &ItemCache{lruCache: l}
}

func itemCacheKey(listID uint, sort string) string {
	return fmt.Sprintf("items:%d:%s", listID, sort)
}

// Get returns the cached listing for (list, sort) or nil.
func (c *ItemCache) Get(listID uint, sort string) []models.ListItem {
	val, ok := c.lruCache.Get(itemCacheKey(listID, sort))
	if !ok {
		return nil
	}
	if time.Now().After(val.expiresAt) {
		c.lruCache.Remove(itemCacheKey(listID, sort))
		return nil
	}
	return val.items
}

// Set stores a listing for (list, sort).
func (c *ItemCache) Set(listID uint, sort string, items []models.ListItem) {
	c.lruCache.Add(itemCacheKey(listID, sort), cachedItems{
		items:     items,
		expiresAt: time.Now().Add(itemCacheTTL),
	})
}

// InvalidateList drops every cached sort variant for a list.
func (c *ItemCache) InvalidateList(listID uint) {
	for _, sort := range []string{models.SortManual, models.SortVotes, models.SortRatings} {
		c.lruCache.Remove(itemCacheKey(listID, sort))
	}
}
