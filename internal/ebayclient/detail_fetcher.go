package ebayclient

import (
	"context"
	"log"

	"github.com/dealhunter/ebay-hunter/internal/credentials"
	"github.com/dealhunter/ebay-hunter/internal/db"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// DetailFetcher implements spec §4.2: cache-first, OAuth GET, one 429 retry
// with credential rotation.
type DetailFetcher struct {
	client *Client
	pool   *credentials.Pool
	store  *db.Store
}

// NewDetailFetcher wires the HTTP client, credential pool, and cache store.
func NewDetailFetcher(client *Client, pool *credentials.Pool, store *db.Store) *DetailFetcher {
	return &DetailFetcher{client: client, pool: pool, store: store}
}

// Fetch retrieves normalized listing detail, honoring DetailCache unless
// includeShipping is set (shipping data is never cached). categoryID is the
// listing's own category id (ebay_item_cache has no category column, so a
// cache hit can't recover it from the store) and is threaded straight onto
// the returned detail regardless of whether the cache served the rest.
func (f *DetailFetcher) Fetch(ctx context.Context, itemID, categoryID string, includeShipping bool) (*models.NormalizedDetail, error) {
	if !includeShipping {
		if cached, err := f.store.GetDetailCache(ctx, itemID); err == nil {
			return &models.NormalizedDetail{Aspects: cached.Aspects, Description: cached.Description, CategoryID: categoryID}, nil
		}
	}

	token, err := f.pool.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}

	result, err := f.client.GetItemDetail(ctx, itemID, token)
	if err != nil {
		return nil, err
	}

	if result.RateLimited {
		label := f.currentCredentialLabel()
		if label != "" {
			if err := f.pool.MarkRateLimited(ctx, label); err != nil {
				log.Printf("[DetailFetcher] mark rate limited failed: %v", err)
			}
		}
		token, err = f.pool.AcquireToken(ctx)
		if err != nil {
			return nil, err
		}
		result, err = f.client.GetItemDetail(ctx, itemID, token)
		if err != nil {
			return nil, err
		}
		if result.RateLimited || result.Detail == nil {
			return nil, nil
		}
	}

	if result.Detail == nil {
		return nil, nil
	}

	normalized := result.Detail.Normalize()

	if !includeShipping {
		if err := f.store.PutDetailCache(ctx, itemID, normalized.Aspects, result.Detail.Title, result.Detail.Description); err != nil {
			log.Printf("[DetailFetcher] cache write failed: %v", err)
		}
	}

	return normalized, nil
}

// currentCredentialLabel is a narrow accessor used only to know which
// credential to mark rate-limited after a 429; the pool owns all other state.
func (f *DetailFetcher) currentCredentialLabel() string {
	return f.pool.CurrentCredentialLabel()
}
