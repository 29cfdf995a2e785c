// Package classify implements the ClassificationPipeline: per-item-type
// ordered rule chains turning a listing into pass/reject(reason) plus
// computed fields (spec §4.5).
package classify

import (
	"context"
	"strings"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// RejectCache is the subset of internal/cache.RejectCache the pipeline needs.
type RejectCache interface {
	IsRejected(ctx context.Context, taskID int64, ebayListingID string) (bool, error)
}

// MatchExistence is the subset of internal/match.Store the pipeline needs.
type MatchExistence interface {
	Exists(ctx context.Context, itemType models.ItemType, taskID int64, ebayListingID string) (bool, error)
}

// DetailFetcher is the subset of internal/ebayclient.DetailFetcher the
// pipeline needs.
type DetailFetcher interface {
	Fetch(ctx context.Context, itemID, categoryID string, includeShipping bool) (*models.NormalizedDetail, error)
}

// MetalPrices is the subset of internal/cache.MetalPriceCache the pipeline
// needs.
type MetalPrices interface {
	Get(metal string) (models.MetalPriceRow, bool)
}

// Pipeline holds the classification chain's external collaborators. It is
// stateless beyond these references; all per-listing state lives on the
// stack of Classify.
type Pipeline struct {
	RejectCache    RejectCache
	Matches        MatchExistence
	Detail         DetailFetcher
	MetalPrices    MetalPrices
	TestSellerName string
}

// Result is the outcome of classifying one listing against one task.
type Result struct {
	Accepted      bool
	IsTestBypass  bool
	RejectReason  string
	JewelryMatch  *models.JewelryMatch
	GemstoneMatch *models.GemstoneMatch
	WatchMatch    *models.WatchMatch
}

func rejected(reason string) *Result {
	return &Result{Accepted: false, RejectReason: reason}
}

// Classify runs the common prefix then dispatches to the item-type chain.
func (p *Pipeline) Classify(ctx context.Context, task *models.Task, listing models.ListingSummary) (*Result, error) {
	isTestBypass := p.TestSellerName != "" && strings.EqualFold(listing.Seller.Name, p.TestSellerName)

	if !isTestBypass {
		if res, rejectedEarly, err := p.commonPrefix(ctx, task, listing); err != nil {
			return nil, err
		} else if rejectedEarly {
			return res, nil
		}
	}

	switch task.ItemType {
	case models.ItemTypeJewelry:
		return p.classifyJewelry(ctx, task, listing, isTestBypass)
	case models.ItemTypeGemstone:
		return p.classifyGemstone(ctx, task, listing, isTestBypass)
	case models.ItemTypeWatch:
		return p.classifyWatch(ctx, task, listing, isTestBypass)
	default:
		return rejected("Unknown item type"), nil
	}
}

// commonPrefix implements spec §4.5.1 steps 2-5 (TestBypass itself is
// handled by the caller). Returns (result, rejected, error).
func (p *Pipeline) commonPrefix(ctx context.Context, task *models.Task, listing models.ListingSummary) (*Result, bool, error) {
	isRejected, err := p.RejectCache.IsRejected(ctx, task.ID, listing.ItemID)
	if err != nil {
		return nil, false, err
	}
	if isRejected {
		return rejected("Previously rejected"), true, nil
	}

	lowerTitle := strings.ToLower(listing.Title)
	for kw := range task.ExcludeKeywords {
		if strings.Contains(lowerTitle, strings.ToLower(kw)) {
			return rejected("Excluded keyword \"" + kw + "\""), true, nil
		}
	}

	if !task.HasCondition(listing.Condition) {
		return rejected("Condition \"" + listing.Condition + "\" not allowed"), true, nil
	}

	total := listing.TotalPrice()
	if task.MinPrice != nil && total < *task.MinPrice {
		return rejected("Below min price"), true, nil
	}
	if task.MaxPrice != nil && total > *task.MaxPrice {
		return rejected("Above max price"), true, nil
	}

	return nil, false, nil
}

// latencySince is the "now - item_creation_date" figure the Notifier's
// footer reports.
func latencySince(created *time.Time) time.Duration {
	if created == nil {
		return 0
	}
	return time.Since(*created)
}
