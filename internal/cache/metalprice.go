package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// metalPriceRefresh is how often MetalPriceCache re-reads the metal_prices
// table. Spot prices move slowly enough that a short poll interval would
// just be wasted queries.
const metalPriceRefresh = 15 * time.Minute

// MetalPriceCache holds the metal_prices table in memory, refreshing on a
// timer rather than per-lookup.
type MetalPriceCache struct {
	store *db.Store

	mu      sync.RWMutex
	rows    map[string]models.MetalPriceRow
	lastRun time.Time
}

// NewMetalPriceCache wraps a Store. Callers should call Refresh once before
// first use so Get doesn't start out empty.
func NewMetalPriceCache(store *db.Store) *MetalPriceCache {
	return &MetalPriceCache{store: store, rows: make(map[string]models.MetalPriceRow)}
}

// Refresh reloads the table unconditionally.
func (c *MetalPriceCache) Refresh(ctx context.Context) error {
	rows, err := c.store.LoadMetalPrices(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.rows = rows
	c.lastRun = time.Now()
	c.mu.Unlock()
	return nil
}

// RefreshIfStale reloads the table only if metalPriceRefresh has elapsed
// since the last load, meant to be called cheaply on every scheduler tick.
func (c *MetalPriceCache) RefreshIfStale(ctx context.Context) error {
	c.mu.RLock()
	stale := time.Since(c.lastRun) >= metalPriceRefresh
	c.mu.RUnlock()
	if !stale {
		return nil
	}
	return c.Refresh(ctx)
}

// Get satisfies classify.MetalPrices.
func (c *MetalPriceCache) Get(metal string) (models.MetalPriceRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	row, ok := c.rows[metal]
	return row, ok
}
