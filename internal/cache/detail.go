package cache

import (
	"context"

	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// DetailCache wraps the ebay_item_cache table. It intentionally has no
// in-memory layer beyond what RejectCache needs: item detail is fetched at
// most once per listing per task-poll, so a per-process map would just
// duplicate what the datastore's TTL already guarantees.
type DetailCache struct {
	store *db.Store
}

// NewDetailCache wraps a Store.
func NewDetailCache(store *db.Store) *DetailCache {
	return &DetailCache{store: store}
}

// Get returns a cached entry if present and unexpired.
func (c *DetailCache) Get(ctx context.Context, ebayItemID string) (*models.DetailCacheEntry, bool, error) {
	entry, err := c.store.GetDetailCache(ctx, ebayItemID)
	if err != nil {
		return nil, false, nil // cache miss or expired; not a fetch-blocking error
	}
	return entry, true, nil
}

// Put upserts a normalized detail with the standard 24h TTL.
func (c *DetailCache) Put(ctx context.Context, ebayItemID string, aspects map[string]string, title, description string) error {
	return c.store.PutDetailCache(ctx, ebayItemID, aspects, title, description)
}
