// Package scheduler implements the Scheduler main loop, PaginationCursor,
// RetryPass and TestBypass bookkeeping (spec §4.9-4.11), grounded on the
// teacher's ticker-driven poller with per-cycle bounded sequential work.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/classify"
	"github.com/dealhunter/ebay-hunter/internal/ebayclient"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

const (
	interTaskDelay  = 3 * time.Second
	interMetalDelay = 5 * time.Second
	perTaskDeadline = 30 * time.Second
	retryLimit      = 10
)

// Scheduler drives the cooperative, single-threaded poll loop spec §5
// describes: one cycle at a time, tasks processed sequentially with a
// fixed inter-task delay, listings within a task processed one at a time.
type Scheduler struct {
	Tasks        TaskStore
	Search       SearchAdapter
	Pipeline     *classify.Pipeline
	Matches      MatchStore
	RejectCache  RejectCache
	MetalPrices  MetalPrices
	Notifier     Notifier
	Channels     ChannelProvisioner

	PollInterval time.Duration

	testSet *notifiedTestSet
	cursor  *PaginationCursor
}

// NewScheduler wires the collaborators. PollInterval should come from
// POLL_INTERVAL_MS (default 60000ms per spec §6).
func NewScheduler(deps Scheduler) *Scheduler {
	s := deps
	s.testSet = newNotifiedTestSet()
	s.cursor = NewPaginationCursor()
	return &s
}

// Run blocks, executing poll cycles until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		cycleStart := time.Now()
		s.runCycle(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.sleepRemainder(cycleStart)):
		}
	}
}

func (s *Scheduler) sleepRemainder(cycleStart time.Time) time.Duration {
	elapsed := time.Since(cycleStart)
	remaining := s.PollInterval - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// runCycle implements spec §4.11's loop body.
func (s *Scheduler) runCycle(ctx context.Context) {
	cycleStart := time.Now()

	if err := s.MetalPrices.RefreshIfStale(ctx); err != nil {
		log.Printf("[Scheduler] metal price refresh failed: %v", err)
	}

	tasks, err := s.Tasks.ListActive(ctx)
	if err != nil {
		log.Printf("[Scheduler] list active tasks failed: %v", err)
		return
	}

	metrics := models.HealthMetric{CycleTimestamp: cycleStart}

	for i, task := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		s.Channels.Ensure(ctx, task)

		taskCtx, cancel := context.WithTimeout(ctx, perTaskDeadline)
		found, matched, excluded, err := s.processTask(taskCtx, task)
		cancel()

		metrics.TasksProcessed++
		metrics.TotalItemsFound += found
		metrics.TotalMatches += matched
		metrics.TotalExcluded += excluded
		if err != nil {
			metrics.TasksFailed++
			log.Printf("[Scheduler] task %d failed: %v", task.ID, err)
		}

		if err := s.Tasks.UpdateLastRun(ctx, task.ID, time.Now()); err != nil {
			log.Printf("[Scheduler] update last_run for task %d failed: %v", task.ID, err)
		}

		if i < len(tasks)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(interTaskDelay):
			}
		}
	}

	s.retryPass(ctx)

	metrics.CycleDurationMS = time.Since(cycleStart).Milliseconds()
	if err := s.Tasks.WriteHealthMetric(ctx, metrics); err != nil {
		log.Printf("[Scheduler] write health metric failed: %v", err)
	}
}

// processTask implements the per-task slice of spec §2's flow diagram:
// preload RejectCache, run each expanded metal search, classify and persist
// every listing, release the preloaded set.
func (s *Scheduler) processTask(ctx context.Context, task *models.Task) (found, matched, excluded int, err error) {
	if err := s.RejectCache.PreloadTask(ctx, task.ID); err != nil {
		return 0, 0, 0, err
	}
	defer s.RejectCache.ReleaseTask(task.ID)

	searches := s.buildSearches(task)
	seenListing := make(map[string]bool)

	for i, req := range searches {
		resp, err := s.Search.Search(ctx, req)
		if err != nil {
			log.Printf("[Scheduler] search failed for task %d: %v", task.ID, err)
			continue
		}

		s.cursor.Advance(task.ID, len(resp.Items))

		for _, listing := range resp.Items {
			if seenListing[listing.ItemID] {
				continue
			}
			seenListing[listing.ItemID] = true
			found++

			accepted, err := s.processListing(ctx, task, listing)
			if err != nil {
				log.Printf("[Scheduler] classify failed for task %d listing %s: %v", task.ID, listing.ItemID, err)
				continue
			}
			if accepted {
				matched++
			} else {
				excluded++
			}
		}

		if i < len(searches)-1 {
			select {
			case <-ctx.Done():
				return found, matched, excluded, ctx.Err()
			case <-time.After(interMetalDelay):
			}
		}
	}

	return found, matched, excluded, nil
}

// buildSearches expands a jewelry task's metal set per spec §4.11; every
// other item type issues exactly one search.
func (s *Scheduler) buildSearches(task *models.Task) []ebayclient.SearchRequest {
	base := ebayclient.SearchRequest{
		MinPrice:     task.MinPrice,
		MaxPrice:     task.MaxPrice,
		MinFeedback:  task.MinSellerFeedback,
		ItemLocation: task.ItemLocation,
		ItemType:     task.ItemType,
		Offset:       s.cursor.Offset(task.ID),
	}
	for f := range task.ListingFormats {
		base.ListingType = append(base.ListingType, string(f))
	}
	for c := range task.Conditions {
		base.Condition = append(base.Condition, string(c))
	}

	if task.ItemType != models.ItemTypeJewelry || task.Filters.Jewelry == nil || len(task.Filters.Jewelry.Metal) == 0 {
		req := base
		req.TypeSpecificFilters = typeSpecificFilters(task)
		return []ebayclient.SearchRequest{req}
	}

	metals := expandMetals(task.Filters.Jewelry.Metal)
	out := make([]ebayclient.SearchRequest, 0, len(metals))
	for _, metal := range metals {
		req := base
		filters := typeSpecificFilters(task)
		filters["metal"] = metal
		req.TypeSpecificFilters = filters
		out = append(out, req)
	}
	return out
}

func typeSpecificFilters(task *models.Task) map[string]any {
	out := make(map[string]any)
	switch task.ItemType {
	case models.ItemTypeJewelry:
		if f := task.Filters.Jewelry; f != nil {
			out["weight_min"] = f.WeightMin
			out["weight_max"] = f.WeightMax
			out["no_stone"] = f.NoStone
		}
	case models.ItemTypeGemstone:
		if f := task.Filters.Gemstone; f != nil {
			out["carat_min"] = f.CaratMin
			out["carat_max"] = f.CaratMax
			out["allow_lab_created"] = f.AllowLabCreated
		}
	case models.ItemTypeWatch:
		if f := task.Filters.Watch; f != nil {
			out["year_from"] = f.YearFrom
			out["year_to"] = f.YearTo
		}
	}
	return out
}
