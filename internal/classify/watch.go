package classify

import (
	"context"

	"github.com/dealhunter/ebay-hunter/internal/extract"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// classifyWatch implements spec §4.5.6: common prefix, fetch detail, run
// extractors, accept. No scoring beyond attribute capture.
func (p *Pipeline) classifyWatch(ctx context.Context, task *models.Task, listing models.ListingSummary, isTestBypass bool) (*Result, error) {
	detail, err := p.Detail.Fetch(ctx, listing.ItemID, listing.CategoryID, listing.ShippingType == models.ShippingUnknown)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return rejected("Detail fetch failed"), nil
	}

	match := &models.WatchMatch{MatchCommon: commonFromListing(task, listing)}
	match.CaseMaterial, _ = extract.ExtractCaseMaterial(listing.Title, detail.Aspects)
	match.BandMaterial, _ = extract.ExtractBandMaterial(listing.Title, detail.Aspects)
	match.Movement, _ = extract.ExtractMovement(listing.Title, detail.Aspects)
	match.DialColor, _ = extract.ExtractDialColor(detail.Aspects)
	match.Year, _ = extract.ExtractYear(listing.Title, detail.Aspects)
	match.Brand, _ = extract.ExtractBrand(listing.Title, detail.Aspects)
	match.Model, _ = extract.ExtractModel(detail.Aspects)

	return &Result{Accepted: true, IsTestBypass: isTestBypass, WatchMatch: match}, nil
}
