package classify

import (
	"context"
	"math"
	"strings"

	"github.com/dealhunter/ebay-hunter/internal/extract"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

func hasAnySilverFilter(metals map[string]bool) bool {
	for m := range metals {
		lower := strings.ToLower(m)
		if strings.Contains(lower, "silver") {
			return true
		}
	}
	return false
}

// classifyJewelry implements spec §4.5.2.
func (p *Pipeline) classifyJewelry(ctx context.Context, task *models.Task, listing models.ListingSummary, isTestBypass bool) (*Result, error) {
	filters := task.Filters.Jewelry
	lowerTitle := strings.ToLower(listing.Title)

	if !isTestBypass {
		if term, found := extract.ContainsAny(lowerTitle, extract.BadMetals); found {
			return rejected("Plated/filled/vermeil (\"" + term + "\")"), nil
		}
		if term, found := extract.ContainsAny(lowerTitle, extract.BaseMetalsToReject); found {
			return rejected("Base metal \"" + term + "\""), nil
		}
		if filters == nil || !hasAnySilverFilter(filters.Metal) {
			if strings.Contains(lowerTitle, "sterling silver") || strings.Contains(lowerTitle, "925 silver") ||
				strings.Contains(lowerTitle, ".925") {
				return rejected("Silver (not selected)"), nil
			}
			if strings.Contains(lowerTitle, "silver") && !strings.Contains(lowerTitle, "gold") {
				return rejected("Silver (not selected)"), nil
			}
		}
		if listing.Seller.FeedbackScore < task.MinSellerFeedback {
			return rejected("Seller feedback below minimum"), nil
		}
	}

	exists, err := p.Matches.Exists(ctx, models.ItemTypeJewelry, task.ID, listing.ItemID)
	if err != nil {
		return nil, err
	}
	if exists && !isTestBypass {
		return rejected("Already matched"), nil
	}

	detail, err := p.Detail.Fetch(ctx, listing.ItemID, listing.CategoryID, listing.ShippingType == models.ShippingUnknown)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return rejected("Detail fetch failed"), nil
	}

	if !isTestBypass {
		if extract.JewelryBlacklistCategories[detail.CategoryID] {
			return rejected("Blacklisted category"), nil
		}
		if !extract.JewelryCategoryIDs[detail.CategoryID] {
			return rejected("Category not in jewelry whitelist"), nil
		}
	}

	description := extract.StripHTML(detail.Description)
	lowerDescription := strings.ToLower(description)

	if !isTestBypass {
		if term, found := extract.ContainsAny(lowerDescription, extract.DescriptionBadMetalPhrases); found {
			return rejected("Description: \"" + term + "\""), nil
		}
		if term, found := extract.ContainsAny(lowerDescription, extract.DescriptionBaseMetalPhrases); found {
			return rejected("Description base metal: \"" + term + "\""), nil
		}
		if term, found := extract.ContainsAny(lowerTitle, extract.JewelryToolsExclusions); found {
			return rejected("Tools/supplies listing (\"" + term + "\")"), nil
		}
		if rejectReason, ok := aspectSheetJewelryRules(detail.Aspects, lowerTitle, filters); ok {
			return rejected(rejectReason), nil
		}
	}

	karat, hasKarat := extract.ExtractKarat(listing.Title, detail.Aspects, detail.Description)
	weight, hasWeight := extract.ExtractWeight(listing.Title, detail.Aspects, detail.Description)
	metalResult := extract.ExtractMetal(listing.Title, detail.Aspects, detail.Description)

	if !isTestBypass && hasWeight && filters != nil {
		if filters.WeightMin != nil && weight < *filters.WeightMin {
			return rejected("Weight below minimum"), nil
		}
		if filters.WeightMax != nil && weight > *filters.WeightMax {
			return rejected("Weight above maximum"), nil
		}
	}

	match := &models.JewelryMatch{
		MatchCommon: commonFromListing(task, listing),
		WeightG:     weight,
		MetalType:   string(metalResult.Metal),
	}
	if hasKarat {
		match.Karat = karat
	}

	purity := metalResult.Purity
	if metalResult.Metal == extract.MetalGold && hasKarat {
		purity = karat * 1000 / 24
	}

	meltKnown := hasWeight && (hasKarat || purity > 0) && p.MetalPrices != nil
	if meltKnown {
		melt, ok := computeMeltValue(metalResult.Metal, karat, hasKarat, weight, p.MetalPrices)
		if ok {
			match.MeltValue = melt
			match.BreakEven = melt * 0.97
			totalCost := match.TotalCost()
			match.ProfitScrap = melt - totalCost
			profitMarginPct := 0.0
			if totalCost != 0 {
				profitMarginPct = (match.BreakEven - totalCost) / totalCost * 100
			}

			if !isTestBypass {
				minMargin := task.EffectiveMinProfitMargin()
				if minMargin < -50 {
					minMargin = -50
				}
				if profitMarginPct < minMargin {
					return rejected("Profit margin below minimum"), nil
				}
			}

			match.SuggestedOffer = math.Floor(match.BreakEven * 0.85)
		}
	}

	return &Result{Accepted: true, IsTestBypass: isTestBypass, JewelryMatch: match}, nil
}

// aspectSheetJewelryRules implements spec §4.5.2 step 10: bad-metal
// substrings, fake-tone detection, costume-jewelry terms, and the no_stone
// gate over the aspect sheet.
func aspectSheetJewelryRules(aspects map[string]string, lowerTitle string, filters *models.JewelryFilters) (string, bool) {
	for _, field := range []string{"metal", "base metal", "material"} {
		if v, ok := aspects[field]; ok {
			lower := strings.ToLower(v)
			if term, found := extract.ContainsAny(lower, extract.BadMetals); found {
				return "Aspect " + field + ": \"" + term + "\"", true
			}
			if term, found := extract.ContainsAny(lower, extract.BaseMetalsToReject); found {
				return "Aspect " + field + " base metal: \"" + term + "\"", true
			}
			if strings.Contains(lower, "tone") &&
				!strings.Contains(lower, "two-tone") && !strings.Contains(lower, "tri-tone") &&
				!strings.Contains(lower, "bicolor") && !strings.Contains(lower, "tricolor") {
				return "Fake tone (\"" + v + "\")", true
			}
		}
	}

	if term, found := extract.ContainsAny(lowerTitle, extract.CostumeJewelryExclusions); found {
		return "Costume jewelry (\"" + term + "\")", true
	}

	noStone := filters == nil || filters.NoStone
	if noStone {
		for _, field := range []string{"main stone", "gemstone", "stone"} {
			if v, ok := aspects[field]; ok {
				if !extract.NoStoneValues[strings.ToLower(strings.TrimSpace(v))] {
					return "Has stone (aspect " + field + ": \"" + v + "\")", true
				}
			}
		}
		if term, found := extract.ContainsAny(lowerTitle, extract.StoneKeywords); found {
			return "Has stone keyword (\"" + term + "\")", true
		}
	}

	return "", false
}

// goldKaratMultiplier maps non-canonical karats onto the priced tiers per
// spec §4.5.2 step 13: 9K priced as 10K x 0.97, 22K as 18K x 22/18.
func goldKaratMultiplier(karat int) (priceKarat int, multiplier float64) {
	switch karat {
	case 9:
		return 10, 0.97
	case 22:
		return 18, 22.0 / 18.0
	default:
		return karat, 1.0
	}
}

func computeMeltValue(metal extract.MetalType, karat int, hasKarat bool, weight float64, prices MetalPrices) (float64, bool) {
	if metal == extract.MetalGold {
		if !hasKarat {
			return 0, false
		}
		priceKarat, multiplier := goldKaratMultiplier(karat)
		row, ok := prices.Get("Gold")
		if !ok {
			return 0, false
		}
		var perGram float64
		switch priceKarat {
		case 10:
			perGram = row.PriceGram10K
		case 14:
			perGram = row.PriceGram14K
		case 18:
			perGram = row.PriceGram18K
		case 24:
			perGram = row.PriceGram24K
		default:
			return 0, false
		}
		return weight * perGram * multiplier, true
	}

	row, ok := prices.Get(string(metal))
	if !ok || row.PriceGram24K == 0 {
		return 0, false
	}
	purityFraction := 925.0 / 1000
	switch metal {
	case extract.MetalSilver:
		purityFraction = 925.0 / 1000
	case extract.MetalPlatinum, extract.MetalPalladium:
		purityFraction = 950.0 / 1000
	}
	return weight * row.PriceGram24K * purityFraction, true
}

func commonFromListing(task *models.Task, listing models.ListingSummary) models.MatchCommon {
	return models.MatchCommon{
		TaskID:           task.ID,
		UserID:           task.UserID,
		EbayListingID:    listing.ItemID,
		EbayTitle:        truncate(listing.Title, 150),
		EbayURL:          listing.ListingURL,
		ListedPrice:      listing.Price,
		ShippingCost:     listing.ShippingCost,
		Currency:         listing.Currency,
		BuyFormat:        listing.ListingType,
		SellerFeedback:   listing.Seller.FeedbackScore,
		ItemCreationDate: listing.ItemCreationDate,
		Status:           models.MatchNew,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
