package scheduler

import (
	"context"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/classify"
	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/internal/ebayclient"
	"github.com/dealhunter/ebay-hunter/internal/notify"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// TaskStore is the subset of internal/db.Store the scheduler needs for
// task listing and bookkeeping.
type TaskStore interface {
	ListActive(ctx context.Context) ([]*models.Task, error)
	UpdateLastRun(ctx context.Context, taskID int64, when time.Time) error
	WriteHealthMetric(ctx context.Context, m models.HealthMetric) error
}

// RejectCache is the subset of internal/cache.RejectCache the scheduler
// needs to preload and release per-task skip-lists (spec §4.3).
type RejectCache interface {
	PreloadTask(ctx context.Context, taskID int64) error
	Reject(ctx context.Context, taskID int64, ebayListingID, reason string) error
	ReleaseTask(taskID int64)
}

// MetalPrices is the subset of internal/cache.MetalPriceCache the scheduler
// refreshes once per cycle.
type MetalPrices interface {
	RefreshIfStale(ctx context.Context) error
}

// MatchStore is the subset of internal/match.Store the scheduler and
// RetryPass need.
type MatchStore interface {
	InsertResult(ctx context.Context, result *classify.Result) (int64, error)
	UpdateNotification(ctx context.Context, itemType models.ItemType, id int64, sent bool, slackTS, slackChannelID string) error
	ListUnsent(ctx context.Context, itemType models.ItemType, limit int) ([]db.UnsentMatch, error)
}

// Notifier is the subset of internal/notify.Notifier the scheduler needs.
type Notifier interface {
	SendJewelry(ctx context.Context, m *models.JewelryMatch, latency time.Duration, channel, channelID string) (notify.SendResult, error)
	SendGemstone(ctx context.Context, m *models.GemstoneMatch, latency time.Duration, channel, channelID string) (notify.SendResult, error)
	SendTestBypass(ctx context.Context, itemType models.ItemType, sellerName, title, url, channel, channelID string) (notify.SendResult, error)
}

// ChannelProvisioner is the subset of internal/notify.ChannelProvisioner the
// scheduler needs.
type ChannelProvisioner interface {
	Ensure(ctx context.Context, task *models.Task)
}

// SearchAdapter re-exports the ebayclient contract so callers only need to
// import this package.
type SearchAdapter = ebayclient.SearchAdapter
