package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/classify"
	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/internal/match"
	"github.com/dealhunter/ebay-hunter/internal/notify"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// processListing implements spec §2's per-listing flow: classify, and on
// accept, insert -> notify -> mark-notified, in that order (spec §5's
// ordering guarantee: notification_sent only flips after a successful
// send).
func (s *Scheduler) processListing(ctx context.Context, task *models.Task, listing models.ListingSummary) (accepted bool, err error) {
	result, err := s.Pipeline.Classify(ctx, task, listing)
	if err != nil {
		return false, err
	}

	if !result.Accepted {
		if result.RejectReason != "" {
			if err := s.RejectCache.Reject(ctx, task.ID, listing.ItemID, result.RejectReason); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	id, err := s.Matches.InsertResult(ctx, result)
	if errors.Is(err, match.ErrConflict) {
		return true, nil // already handled by a prior cycle; spec §4.6
	}
	if err != nil {
		return false, err
	}

	latency := latencySince(listing.ItemCreationDate)

	if result.IsTestBypass {
		if s.testSet.claim(listing.ItemID) {
			s.sendTestBypassNotification(ctx, task, listing, result, id)
		}
		return true, nil
	}

	s.sendNotification(ctx, task, result, id, latency)
	return true, nil
}

func latencySince(created *time.Time) time.Duration {
	if created == nil {
		return 0
	}
	return time.Since(*created)
}

func (s *Scheduler) sendNotification(ctx context.Context, task *models.Task, result *classify.Result, id int64, latency time.Duration) {
	switch {
	case result.JewelryMatch != nil:
		res, err := s.Notifier.SendJewelry(ctx, result.JewelryMatch, latency, task.SlackChannel, task.SlackChannelID)
		s.recordNotification(ctx, models.ItemTypeJewelry, id, res, err)
	case result.GemstoneMatch != nil:
		res, err := s.Notifier.SendGemstone(ctx, result.GemstoneMatch, latency, task.SlackChannel, task.SlackChannelID)
		s.recordNotification(ctx, models.ItemTypeGemstone, id, res, err)
	default:
		// Watch matches carry no per-type message contract (spec §4.7) and are
		// never enqueued for RetryPass; persistence alone is their "delivery".
	}
}

func (s *Scheduler) sendTestBypassNotification(ctx context.Context, task *models.Task, listing models.ListingSummary, result *classify.Result, id int64) {
	res, err := s.Notifier.SendTestBypass(ctx, task.ItemType, listing.Seller.Name, listing.Title, listing.ListingURL, task.SlackChannel, task.SlackChannelID)
	var itemType models.ItemType
	switch {
	case result.JewelryMatch != nil:
		itemType = models.ItemTypeJewelry
	case result.GemstoneMatch != nil:
		itemType = models.ItemTypeGemstone
	case result.WatchMatch != nil:
		itemType = models.ItemTypeWatch
	}
	s.recordNotification(ctx, itemType, id, res, err)
}

func (s *Scheduler) recordNotification(ctx context.Context, itemType models.ItemType, id int64, res notify.SendResult, err error) {
	if err != nil || !res.OK {
		return
	}
	_ = s.Matches.UpdateNotification(ctx, itemType, id, true, res.TS, res.ChannelID) // best-effort: a failed flag update just means RetryPass sends again
}

// retryPass implements spec §4.10: scan matches_jewelry and matches_gemstone
// for unsent rows and attempt redelivery.
func (s *Scheduler) retryPass(ctx context.Context) {
	for _, itemType := range []models.ItemType{models.ItemTypeJewelry, models.ItemTypeGemstone} {
		rows, err := s.Matches.ListUnsent(ctx, itemType, retryLimit)
		if err != nil {
			continue
		}
		for _, row := range rows {
			s.retryOne(ctx, row)
		}
	}
}

func (s *Scheduler) retryOne(ctx context.Context, row db.UnsentMatch) {
	var res notify.SendResult
	var err error

	switch row.ItemType {
	case models.ItemTypeJewelry:
		res, err = s.Notifier.SendJewelry(ctx, row.JewelryMatch, latencySince(row.JewelryMatch.ItemCreationDate), row.SlackChannel, row.SlackChannelID)
	case models.ItemTypeGemstone:
		res, err = s.Notifier.SendGemstone(ctx, row.GemstoneMatch, latencySince(row.GemstoneMatch.ItemCreationDate), row.SlackChannel, row.SlackChannelID)
	default:
		return
	}
	if err != nil || !res.OK {
		return
	}

	var id int64
	if row.JewelryMatch != nil {
		id = row.JewelryMatch.ID
	} else if row.GemstoneMatch != nil {
		id = row.GemstoneMatch.ID
	}
	_ = s.Matches.UpdateNotification(ctx, row.ItemType, id, true, res.TS, res.ChannelID)
}
