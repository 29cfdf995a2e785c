package cache

import (
	"context"
	"log"
	"time"

	"github.com/dealhunter/ebay-hunter/internal/db"
)

// sweepInterval mirrors the teacher's cleanupIdleDuration ticker cadence,
// applied here to expired Postgres rows instead of idle in-memory buckets.
const sweepInterval = 10 * time.Minute

// CleanupSweeper periodically deletes expired rejected_items and
// ebay_item_cache rows so those tables don't grow unbounded across a
// long-running process (spec §4.3).
type CleanupSweeper struct {
	store *db.Store
}

// NewCleanupSweeper wraps a Store.
func NewCleanupSweeper(store *db.Store) *CleanupSweeper {
	return &CleanupSweeper{store: store}
}

// Run blocks, sweeping on a ticker until ctx is canceled.
func (s *CleanupSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *CleanupSweeper) sweepOnce(ctx context.Context) {
	if n, err := s.store.SweepExpiredRejects(ctx); err != nil {
		log.Printf("[CleanupSweeper] reject sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("[CleanupSweeper] swept %d expired reject rows", n)
	}

	if n, err := s.store.SweepExpiredDetailCache(ctx); err != nil {
		log.Printf("[CleanupSweeper] detail cache sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("[CleanupSweeper] swept %d expired detail cache rows", n)
	}
}
