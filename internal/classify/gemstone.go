package classify

import (
	"context"
	"strings"

	"github.com/dealhunter/ebay-hunter/internal/extract"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

// classifyGemstone implements spec §4.5.3.
func (p *Pipeline) classifyGemstone(ctx context.Context, task *models.Task, listing models.ListingSummary, isTestBypass bool) (*Result, error) {
	filters := task.Filters.Gemstone
	lowerTitle := strings.ToLower(listing.Title)

	detail, err := p.Detail.Fetch(ctx, listing.ItemID, listing.CategoryID, listing.ShippingType == models.ShippingUnknown)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return rejected("Detail fetch failed"), nil
	}

	if !isTestBypass {
		allowed := extract.GemstoneCategoryIDs[detail.CategoryID] || extract.JewelryCategoryIDs[detail.CategoryID]
		if !allowed {
			return rejected("Category not in gemstone whitelist"), nil
		}

		haystack := lowerTitle
		for _, v := range detail.Aspects {
			haystack += " " + strings.ToLower(v)
		}
		if term, found := extract.ContainsAny(haystack, extract.GemstoneBlacklist); found {
			return rejected("Simulant/imitation (\"" + term + "\")"), nil
		}
		allowLab := filters != nil && filters.AllowLabCreated
		if !allowLab {
			if term, found := extract.ContainsAny(haystack, extract.LabCreatedTerms); found {
				return rejected("Lab-created (\"" + term + "\")"), nil
			}
		}
	}

	stone := extract.StoneAttributes{}
	stone.StoneType, _ = extract.ExtractStoneType(listing.Title, detail.Aspects)
	stone.Shape, _ = extract.ExtractShape(listing.Title, detail.Aspects)
	stone.Carat, stone.HasCarat = extract.ExtractCarat(listing.Title, detail.Aspects)
	stone.Color, _ = extract.ExtractColor(listing.Title, detail.Aspects)
	stone.Clarity, _ = extract.ExtractClarity(listing.Title, detail.Aspects)
	stone.Cert, _ = extract.ExtractCertification(listing.Title, detail.Aspects)
	stone.Treatment = extract.ExtractTreatment(listing.Title, detail.Aspects)
	stone.IsNatural = extract.ExtractIsNatural(listing.Title, detail.Aspects)

	if !isTestBypass && filters != nil && stone.HasCarat {
		if filters.CaratMin != nil && stone.Carat < *filters.CaratMin {
			return rejected("Carat below minimum"), nil
		}
		if filters.CaratMax != nil && stone.Carat > *filters.CaratMax {
			return rejected("Carat above maximum"), nil
		}
	}

	match := &models.GemstoneMatch{
		MatchCommon: commonFromListing(task, listing),
		StoneType:   stone.StoneType,
		Shape:       stone.Shape,
		Carat:       stone.Carat,
		Colour:      stone.Color,
		Clarity:     stone.Clarity,
		CertLab:     stone.Cert,
		Treatment:   stone.Treatment,
		IsNatural:   stone.IsNatural,
	}
	match.DealScore = computeDealScore(task, listing, stone)
	match.RiskScore = computeRiskScore(listing, stone, lowerTitle)

	return &Result{Accepted: true, IsTestBypass: isTestBypass, GemstoneMatch: match}, nil
}
