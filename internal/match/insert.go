package match

import (
	"context"
	"fmt"

	"github.com/dealhunter/ebay-hunter/internal/classify"
)

// InsertResult dispatches an accepted classify.Result to the matching typed
// insert, returning the new row id. Callers should treat ErrConflict as
// "already handled" rather than a failure (spec §4.6).
func (s *Store) InsertResult(ctx context.Context, result *classify.Result) (int64, error) {
	switch {
	case result.JewelryMatch != nil:
		return s.InsertJewelry(ctx, result.JewelryMatch)
	case result.GemstoneMatch != nil:
		return s.InsertGemstone(ctx, result.GemstoneMatch)
	case result.WatchMatch != nil:
		return s.InsertWatch(ctx, result.WatchMatch)
	default:
		return 0, fmt.Errorf("accepted result carries no match payload")
	}
}
