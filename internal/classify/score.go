package classify

import (
	"strings"

	"github.com/dealhunter/ebay-hunter/internal/extract"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

var vagueTerms = []string{"genuine", "real", "authentic", "natural looking", "stunning", "rare find"}

// computeDealScore implements spec §4.5.4: raw point sum across five
// weighted signals, rescaled to 0-100.
func computeDealScore(task *models.Task, listing models.ListingSummary, stone extract.StoneAttributes) int {
	sum := 0.0

	sum += matchQuality(task, stone)
	sum += sellerQuality(listing.Seller.FeedbackScore, listing.Seller.FeedbackPercentage)
	sum += formatScore(listing.ListingType, listing.BuyingOptions)
	sum += certBonus(stone.Cert, strings.ToLower(listing.Title))
	sum += detailBonus(stone)

	if stone.IsNatural {
		sum += 5
	}
	if stone.Treatment == extract.TreatmentNotEnhanced && !strings.EqualFold(stone.StoneType, "Diamond") {
		sum += 5
	}

	scaled := int(round(sum / 85 * 100))
	return clamp(scaled, 0, 100)
}

// matchQuality is spec §4.5.4's 0-25 band: filter-match presence when the
// task specifies stone_types/shapes/carat, else average attribute presence.
func matchQuality(task *models.Task, stone extract.StoneAttributes) float64 {
	filters := task.Filters.Gemstone
	if filters != nil && (len(filters.StoneTypes) > 0 || len(filters.Shapes) > 0 || filters.CaratMin != nil || filters.CaratMax != nil) {
		score := 0.0
		if len(filters.StoneTypes) > 0 && filters.StoneTypes[stone.StoneType] {
			score += 5
		}
		if len(filters.Shapes) > 0 && filters.Shapes[stone.Shape] {
			score += 5
		}
		if stone.HasCarat {
			score += 5
		}
		if score > 25 {
			score = 25
		}
		return score
	}

	present := 0
	total := 5
	if stone.StoneType != "" {
		present++
	}
	if stone.Shape != "" {
		present++
	}
	if stone.HasCarat {
		present++
	}
	if stone.Color != "" {
		present++
	}
	if stone.Clarity != "" {
		present++
	}
	return float64(present) / float64(total) * 25
}

// sellerQuality is spec §4.5.4's 0-15 band: an 8-bin feedback-score ladder
// plus a 7-bin feedback-percentage ladder.
func sellerQuality(feedbackScore int, feedbackPct float64) float64 {
	scoreBand := 0.0
	switch {
	case feedbackScore >= 10000:
		scoreBand = 8
	case feedbackScore >= 5000:
		scoreBand = 7
	case feedbackScore >= 1000:
		scoreBand = 6
	case feedbackScore >= 500:
		scoreBand = 5
	case feedbackScore >= 100:
		scoreBand = 4
	case feedbackScore >= 50:
		scoreBand = 3
	case feedbackScore >= 10:
		scoreBand = 2
	default:
		scoreBand = 1
	}

	pctBand := 0.0
	switch {
	case feedbackPct >= 99.5:
		pctBand = 7
	case feedbackPct >= 99:
		pctBand = 6
	case feedbackPct >= 98:
		pctBand = 5
	case feedbackPct >= 97:
		pctBand = 4
	case feedbackPct >= 95:
		pctBand = 3
	case feedbackPct >= 90:
		pctBand = 2
	default:
		pctBand = 1
	}

	total := scoreBand + pctBand
	maxTotal := 15.0
	return total / 15.0 * maxTotal
}

// formatScore is spec §4.5.4's 0-10 band.
func formatScore(listingType string, buyingOptions []string) float64 {
	for _, o := range buyingOptions {
		switch o {
		case "BEST_OFFER":
			return 10
		case "FIXED_PRICE":
			return 7
		case "AUCTION":
			return 5
		}
	}
	switch listingType {
	case "BEST_OFFER":
		return 10
	case "FIXED_PRICE":
		return 7
	case "AUCTION":
		return 5
	default:
		return 3
	}
}

// certBonus is spec §4.5.4's 0-15 band.
func certBonus(cert string, lowerTitle string) float64 {
	if cert == "" {
		if strings.Contains(lowerTitle, "certified") {
			return 3
		}
		return 0
	}
	for _, lab := range extract.CertLabs.Premium {
		if cert == lab {
			return 15
		}
	}
	for _, lab := range extract.CertLabs.Standard {
		if cert == lab {
			return 10
		}
	}
	for _, lab := range extract.CertLabs.Budget {
		if cert == lab {
			return 5
		}
	}
	return 3
}

// detailBonus is spec §4.5.4's 0-10 band: +2 per present attribute, capped.
func detailBonus(stone extract.StoneAttributes) float64 {
	count := 0
	if stone.HasCarat {
		count++
	}
	if stone.Color != "" {
		count++
	}
	if stone.Clarity != "" {
		count++
	}
	if stone.Shape != "" {
		count++
	}
	if stone.Treatment != "" && stone.Treatment != extract.TreatmentUnknown {
		count++
	}
	bonus := float64(count) * 2
	if bonus > 10 {
		bonus = 10
	}
	return bonus
}

// computeRiskScore implements spec §4.5.5.
func computeRiskScore(listing models.ListingSummary, stone extract.StoneAttributes, lowerTitle string) int {
	risk := 0.0

	if _, found := extract.ContainsAny(lowerTitle, extract.LabCreatedTerms); found {
		risk += 30
	} else if strings.Contains(lowerTitle, "simulant") {
		risk += 30
	}

	if listing.ReturnsAccepted == nil || !*listing.ReturnsAccepted {
		risk += 20
	}

	missing := 0
	if !stone.HasCarat {
		missing++
	}
	if stone.Color == "" {
		missing++
	}
	if stone.Clarity == "" {
		missing++
	}
	if stone.StoneType == "" {
		missing++
	}
	risk += float64(missing) * 5

	if stone.Treatment == extract.TreatmentHeavy {
		risk += 15
	}

	if listing.Seller.FeedbackScore < 50 {
		risk += 10
	} else if listing.Seller.FeedbackScore < 100 {
		risk += 5
	}
	if listing.Seller.FeedbackPercentage < 98 {
		risk += 5
	}

	if _, found := extract.ContainsAny(lowerTitle, vagueTerms); found {
		risk += 10
	}

	if stone.IsNatural && stone.HasCarat && stone.Carat >= 1 {
		pricePerCarat := listing.TotalPrice() / stone.Carat
		if pricePerCarat < 50 {
			risk += 10
		}
	}

	return clamp(int(round(risk)), 0, 100)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}
