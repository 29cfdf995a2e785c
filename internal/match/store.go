// Package match implements the MatchStore facade spec §4.6 calls into after
// a listing is accepted by the classification pipeline: existence checks,
// the three typed inserts, and the unsent-match queues RetryPass drains.
package match

import (
	"context"
	"fmt"

	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// ErrConflict mirrors db.ErrConflict so callers don't need to import
// internal/db just to check this one sentinel.
var ErrConflict = db.ErrConflict

// Store dispatches by item type to the per-table db methods. Each insert is
// a single INSERT ... ON CONFLICT DO NOTHING statement (no transaction); a
// duplicate (task_id, ebay_listing_id) comes back as ErrConflict.
type Store struct {
	db *db.Store
}

// NewStore wraps a Store.
func NewStore(database *db.Store) *Store {
	return &Store{db: database}
}

// Exists satisfies classify.MatchExistence.
func (s *Store) Exists(ctx context.Context, itemType models.ItemType, taskID int64, ebayListingID string) (bool, error) {
	return s.db.ExistsMatch(ctx, itemType, taskID, ebayListingID)
}

// InsertJewelry persists a jewelry match, returning ErrConflict on a
// duplicate (task_id, ebay_listing_id).
func (s *Store) InsertJewelry(ctx context.Context, m *models.JewelryMatch) (int64, error) {
	return s.db.InsertJewelryMatch(ctx, m)
}

// InsertGemstone persists a gemstone match.
func (s *Store) InsertGemstone(ctx context.Context, m *models.GemstoneMatch) (int64, error) {
	return s.db.InsertGemstoneMatch(ctx, m)
}

// InsertWatch persists a watch match.
func (s *Store) InsertWatch(ctx context.Context, m *models.WatchMatch) (int64, error) {
	return s.db.InsertWatchMatch(ctx, m)
}

// UpdateNotification records a Notifier.Send outcome against a match row.
func (s *Store) UpdateNotification(ctx context.Context, itemType models.ItemType, id int64, sent bool, slackTS, slackChannelID string) error {
	return s.db.UpdateNotification(ctx, itemType, id, sent, slackTS, slackChannelID)
}

// ListUnsent loads up to limit matches with notification_sent=false for one
// of the two notifiable item types (spec §4.10: watches are never queued
// for retry since the Notifier has no watch message to send).
func (s *Store) ListUnsent(ctx context.Context, itemType models.ItemType, limit int) ([]db.UnsentMatch, error) {
	switch itemType {
	case models.ItemTypeJewelry:
		return s.db.ListUnsentJewelry(ctx, limit)
	case models.ItemTypeGemstone:
		return s.db.ListUnsentGemstone(ctx, limit)
	default:
		return nil, fmt.Errorf("item type %q has no unsent queue", itemType)
	}
}

// FindBySlackMessage resolves a match row by (channel, ts) for the reaction
// receiver.
func (s *Store) FindBySlackMessage(ctx context.Context, channelID, ts string) (models.ItemType, int64, bool, error) {
	return s.db.FindMatchBySlackMessage(ctx, channelID, ts)
}

// UpdateStatus sets a match row's status unconditionally.
func (s *Store) UpdateStatus(ctx context.Context, itemType models.ItemType, id int64, status models.MatchStatus) error {
	return s.db.UpdateMatchStatus(ctx, itemType, id, status)
}
