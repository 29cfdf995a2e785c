// Package cache implements RejectCache, DetailCache, and MetalPriceCache,
// all Postgres-backed (spec §4.3/§2). RejectCache and MetalPriceCache keep an
// in-process layer so a hot task doesn't round-trip to the datastore for
// every listing on a page; DetailCache reads and writes the datastore
// directly.
package cache

import (
	"context"
	"sync"

	"github.com/dealhunter/ebay-hunter/internal/db"
)

// RejectCache wraps the rejected_items table. PreloadTask loads the full
// skip-list for a task once per poll (spec §4.3); IsRejected then checks
// that in-memory set before falling back to the datastore.
type RejectCache struct {
	store *db.Store

	mu       sync.RWMutex
	loaded   map[int64]map[string]bool
}

// NewRejectCache wraps a Store.
func NewRejectCache(store *db.Store) *RejectCache {
	return &RejectCache{store: store, loaded: make(map[int64]map[string]bool)}
}

// PreloadTask loads the live reject rows for a task into memory, called once
// at the start of each task's poll.
func (c *RejectCache) PreloadTask(ctx context.Context, taskID int64) error {
	skip, err := c.store.ListRejected(ctx, taskID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.loaded[taskID] = skip
	c.mu.Unlock()
	return nil
}

// IsRejected reports whether a listing is known-bad for a task, checking
// the preloaded set first.
func (c *RejectCache) IsRejected(ctx context.Context, taskID int64, ebayListingID string) (bool, error) {
	c.mu.RLock()
	skip, ok := c.loaded[taskID]
	c.mu.RUnlock()
	if ok {
		return skip[ebayListingID], nil
	}
	return c.store.IsRejected(ctx, taskID, ebayListingID)
}

// Reject upserts a rejection row and mirrors it into the in-memory set so
// the rest of the current poll sees it immediately.
func (c *RejectCache) Reject(ctx context.Context, taskID int64, ebayListingID, reason string) error {
	if err := c.store.Reject(ctx, taskID, ebayListingID, reason); err != nil {
		return err
	}
	c.mu.Lock()
	if c.loaded[taskID] == nil {
		c.loaded[taskID] = make(map[string]bool)
	}
	c.loaded[taskID][ebayListingID] = true
	c.mu.Unlock()
	return nil
}

// ReleaseTask drops a task's preloaded set at the end of its poll, bounding
// memory use across many tasks.
func (c *RejectCache) ReleaseTask(taskID int64) {
	c.mu.Lock()
	delete(c.loaded, taskID)
	c.mu.Unlock()
}
