package notify

import (
	"fmt"
	"math"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

func truncateTitle(s string) string {
	if len(s) <= 150 {
		return s
	}
	return s[:150]
}

// jewelryMessage implements spec §4.7's jewelry message content contract.
func jewelryMessage(m *models.JewelryMatch, latency time.Duration) slackMessage {
	total := m.TotalCost()
	totalLine := fmt.Sprintf("$%.2f", total)
	if m.ShippingCost != nil {
		totalLine = fmt.Sprintf("$%.2f + $%.2f shipping", m.ListedPrice, *m.ShippingCost)
	}

	profitMargin := 0.0
	if total != 0 {
		profitMargin = (m.BreakEven - total) / total * 100
	}

	// Notification offer is its own figure (spec §4.7: floor(melt*0.87)),
	// distinct from the persisted SuggestedOffer column (§4.5.2-15).
	notifyOffer := math.Floor(m.MeltValue * 0.87)

	color := "danger"
	if m.ProfitScrap >= 0 {
		color = "good"
	}

	return slackMessage{
		Text: fmt.Sprintf(":gem: Jewelry match: %s", truncateTitle(m.EbayTitle)),
		Attachments: []slackAttachment{{
			Color:     color,
			Title:     truncateTitle(m.EbayTitle),
			TitleLink: m.EbayURL,
			Fields: []slackField{
				{Title: "Total", Value: totalLine, Short: true},
				{Title: "Karat", Value: fmt.Sprintf("%dK %s", m.Karat, m.MetalType), Short: true},
				{Title: "Weight", Value: fmt.Sprintf("%.2f g", m.WeightG), Short: true},
				{Title: "Suggested offer", Value: fmt.Sprintf("$%.2f", notifyOffer), Short: true},
				{Title: "Profit margin", Value: fmt.Sprintf("%.1f%%", profitMargin), Short: true},
			},
			Footer: "found " + formatLatency(latency),
		}},
	}
}

// gemstoneMessage implements spec §4.7's gemstone message content contract.
func gemstoneMessage(m *models.GemstoneMatch, latency time.Duration) slackMessage {
	dealEmoji := ":file_folder:"
	switch {
	case m.DealScore >= 80:
		dealEmoji = ":fire:"
	case m.DealScore >= 60:
		dealEmoji = ":gem:"
	}

	riskLabel, riskEmoji := "Low", ":large_green_circle:"
	switch {
	case m.RiskScore >= 50:
		riskLabel, riskEmoji = "High", ":red_circle:"
	case m.RiskScore >= 30:
		riskLabel, riskEmoji = "Med", ":large_yellow_circle:"
	}

	detailLine := fmt.Sprintf("%s | %s | %s | %s", orDash(m.Shape), orDash(m.Colour), orDash(m.Clarity), orDash(m.CertLab))

	return slackMessage{
		Text: fmt.Sprintf("%s Gemstone match: %s", dealEmoji, truncateTitle(m.EbayTitle)),
		Attachments: []slackAttachment{{
			Color:     "good",
			Title:     truncateTitle(m.EbayTitle),
			TitleLink: m.EbayURL,
			Fields: []slackField{
				{Title: "Deal score", Value: fmt.Sprintf("%s %d/100", dealEmoji, m.DealScore), Short: true},
				{Title: "Risk", Value: fmt.Sprintf("%s %s (%d/100)", riskEmoji, riskLabel, m.RiskScore), Short: true},
				{Title: "Stone", Value: fmt.Sprintf("%.2f ct %s", m.Carat, orDash(m.StoneType)), Short: true},
				{Title: "Detail", Value: detailLine, Short: false},
			},
			Footer: "found " + formatLatency(latency),
		}},
	}
}

// testBypassMessage implements spec §4.7's compact test-bypass block, with
// a header distinct from the normal jewelry/gemstone headers.
func testBypassMessage(itemType models.ItemType, sellerName, title, url string) slackMessage {
	return slackMessage{
		Text: fmt.Sprintf(":test_tube: Test-bypass match (%s, seller %q)", itemType, sellerName),
		Attachments: []slackAttachment{{
			Color:     "#439FE0",
			Title:     truncateTitle(title),
			TitleLink: url,
			Text:      "This listing bypassed all filters because it came from the configured test seller.",
		}},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
