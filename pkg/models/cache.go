package models

import "time"

// RejectCacheEntry records a listing already rejected for a task, so the
// worker doesn't re-run the pipeline against it until the entry expires.
type RejectCacheEntry struct {
	TaskID          int64
	EbayListingID   string
	RejectionReason string
	RejectedAt      time.Time
	ExpiresAt       time.Time
}

const RejectCacheTTL = 48 * time.Hour

// DetailCacheEntry is a cached, normalized listing detail keyed by item id
// alone (detail is seller/listing data, not task-specific).
type DetailCacheEntry struct {
	EbayItemID  string
	Aspects     map[string]string
	Title       string
	Description string
	FetchedAt   time.Time
	ExpiresAt   time.Time
}

const DetailCacheTTL = 24 * time.Hour

// MetalPriceRow is one row of the metal_prices table: per-gram spot price
// at each karat tier for a given metal.
type MetalPriceRow struct {
	Metal         string
	PriceGram10K  float64
	PriceGram14K  float64
	PriceGram18K  float64
	PriceGram24K  float64
}

// HealthMetric is one worker_health_metrics row written at the end of every
// poll cycle.
type HealthMetric struct {
	CycleTimestamp   time.Time
	CycleDurationMS  int64
	TasksProcessed   int
	TasksFailed      int
	TotalItemsFound  int
	TotalMatches     int
	TotalExcluded    int
	MemoryUsageMB    float64
}
