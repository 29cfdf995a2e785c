package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// IsRejected reports whether a (task, listing) pair has a live reject-cache
// row.
func (s *Store) IsRejected(ctx context.Context, taskID int64, ebayListingID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM rejected_items
			WHERE task_id = $1 AND ebay_listing_id = $2 AND expires_at > now()
		)`, taskID, ebayListingID).Scan(&exists)
	return exists, err
}

// Reject upserts a rejection row with the standard 48h TTL.
func (s *Store) Reject(ctx context.Context, taskID int64, ebayListingID, reason string) error {
	now := time.Now()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rejected_items (task_id, ebay_listing_id, rejection_reason, rejected_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (task_id, ebay_listing_id) DO UPDATE
		SET rejection_reason = EXCLUDED.rejection_reason,
		    rejected_at = EXCLUDED.rejected_at,
		    expires_at = EXCLUDED.expires_at`,
		taskID, ebayListingID, reason, now, now.Add(models.RejectCacheTTL))
	return err
}

// ListRejected preloads the full skip-list for a task, used once per poll.
func (s *Store) ListRejected(ctx context.Context, taskID int64) (map[string]bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ebay_listing_id FROM rejected_items
		WHERE task_id = $1 AND expires_at > now()`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// SweepExpiredRejects deletes expired reject-cache rows. CleanupSweeper calls
// it on every tick of its fixed interval; the call is not randomized.
func (s *Store) SweepExpiredRejects(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM rejected_items WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetDetailCache returns a cached, normalized listing detail if present and
// unexpired.
func (s *Store) GetDetailCache(ctx context.Context, ebayItemID string) (*models.DetailCacheEntry, error) {
	var entry models.DetailCacheEntry
	var specifics []byte
	err := s.pool.QueryRow(ctx, `
		SELECT ebay_item_id, item_specifics, title, description, fetched_at, expires_at
		FROM ebay_item_cache
		WHERE ebay_item_id = $1 AND expires_at > now()`, ebayItemID).
		Scan(&entry.EbayItemID, &specifics, &entry.Title, &entry.Description, &entry.FetchedAt, &entry.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if len(specifics) > 0 {
		if err := json.Unmarshal(specifics, &entry.Aspects); err != nil {
			return nil, fmt.Errorf("unmarshal item_specifics: %w", err)
		}
	}
	return &entry, nil
}

// PutDetailCache upserts a normalized listing detail with the standard 24h TTL.
func (s *Store) PutDetailCache(ctx context.Context, ebayItemID string, aspects map[string]string, title, description string) error {
	specifics, err := json.Marshal(aspects)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO ebay_item_cache (ebay_item_id, item_specifics, title, description, fetched_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ebay_item_id) DO UPDATE
		SET item_specifics = EXCLUDED.item_specifics,
		    title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    fetched_at = EXCLUDED.fetched_at,
		    expires_at = EXCLUDED.expires_at`,
		ebayItemID, specifics, title, description, now, now.Add(models.DetailCacheTTL))
	return err
}

// SweepExpiredDetailCache deletes expired detail-cache rows.
func (s *Store) SweepExpiredDetailCache(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ebay_item_cache WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// LoadMetalPrices returns the full metal_prices table keyed by metal name.
func (s *Store) LoadMetalPrices(ctx context.Context) (map[string]models.MetalPriceRow, error) {
	rows, err := s.pool.Query(ctx, `SELECT metal, price_gram_10k, price_gram_14k, price_gram_18k, price_gram_24k FROM metal_prices`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.MetalPriceRow)
	for rows.Next() {
		var r models.MetalPriceRow
		if err := rows.Scan(&r.Metal, &r.PriceGram10K, &r.PriceGram14K, &r.PriceGram18K, &r.PriceGram24K); err != nil {
			return nil, err
		}
		out[r.Metal] = r
	}
	return out, rows.Err()
}

// GetSetting reads a settings row's raw JSON value by key.
func (s *Store) GetSetting(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value_json FROM settings WHERE key = $1`, key).Scan(&value)
	return value, err
}

// PutSetting upserts a settings row.
func (s *Store) PutSetting(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value_json) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value_json = EXCLUDED.value_json`, key, value)
	return err
}
