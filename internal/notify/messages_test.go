package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

func TestTruncateTitle_LeavesShortTitlesAlone(t *testing.T) {
	if got := truncateTitle("short title"); got != "short title" {
		t.Fatalf("expected unchanged title, got %q", got)
	}
}

func TestTruncateTitle_CutsAt150Chars(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := truncateTitle(long)
	if len(got) != 150 {
		t.Fatalf("expected truncation to 150 chars, got %d", len(got))
	}
}

func TestOrDash_EmptyBecomesDash(t *testing.T) {
	if got := orDash(""); got != "-" {
		t.Fatalf("expected '-' for empty string, got %q", got)
	}
	if got := orDash("VS1"); got != "VS1" {
		t.Fatalf("expected value to pass through unchanged, got %q", got)
	}
}

func TestFormatLatency_Buckets(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "unknown"},
		{-time.Minute, "unknown"},
		{30 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{48 * time.Hour, "2d ago"},
	}
	for _, c := range cases {
		if got := formatLatency(c.d); got != c.want {
			t.Fatalf("formatLatency(%v): expected %q, got %q", c.d, c.want, got)
		}
	}
}

func TestJewelryMessage_SuggestedOfferUsesMeltNotBreakEven(t *testing.T) {
	m := &models.JewelryMatch{
		MatchCommon:    models.MatchCommon{ListedPrice: 150, EbayTitle: "Ring"},
		MeltValue:      220,
		BreakEven:      213.4,
		SuggestedOffer: 181, // the persisted §4.5.2-15 column, untouched by the notifier
	}
	msg := jewelryMessage(m, time.Minute)
	offerField := msg.Attachments[0].Fields[3]
	if offerField.Value != "$191.00" {
		t.Fatalf("expected the displayed offer to be floor(melt*0.87)=191, got %q", offerField.Value)
	}
}

func TestJewelryMessage_NegativeScrapProfitIsDangerColored(t *testing.T) {
	m := &models.JewelryMatch{
		MatchCommon: models.MatchCommon{ListedPrice: 500, EbayTitle: "Ring"},
		ProfitScrap: -10,
	}
	msg := jewelryMessage(m, time.Minute*10)
	if msg.Attachments[0].Color != "danger" {
		t.Fatalf("expected danger color for a negative scrap profit, got %q", msg.Attachments[0].Color)
	}
}

func TestJewelryMessage_PositiveScrapProfitIsGoodColored(t *testing.T) {
	m := &models.JewelryMatch{
		MatchCommon: models.MatchCommon{ListedPrice: 500, EbayTitle: "Ring"},
		ProfitScrap: 50,
	}
	msg := jewelryMessage(m, time.Minute*10)
	if msg.Attachments[0].Color != "good" {
		t.Fatalf("expected good color for a positive scrap profit, got %q", msg.Attachments[0].Color)
	}
}

func TestGemstoneMessage_HighDealScoreUsesFireEmoji(t *testing.T) {
	m := &models.GemstoneMatch{
		MatchCommon: models.MatchCommon{EbayTitle: "Sapphire"},
		DealScore:   90,
		RiskScore:   10,
	}
	msg := gemstoneMessage(m, time.Minute)
	if !strings.Contains(msg.Text, ":fire:") {
		t.Fatalf("expected fire emoji in text for a high deal score, got %q", msg.Text)
	}
}

func TestGemstoneMessage_HighRiskScoreLabeledHigh(t *testing.T) {
	m := &models.GemstoneMatch{
		MatchCommon: models.MatchCommon{EbayTitle: "Sapphire"},
		DealScore:   20,
		RiskScore:   70,
	}
	msg := gemstoneMessage(m, time.Minute)
	riskField := msg.Attachments[0].Fields[1]
	if !strings.Contains(riskField.Value, "High") {
		t.Fatalf("expected risk field to say High, got %q", riskField.Value)
	}
}

func TestTestBypassMessage_NamesSellerAndItemType(t *testing.T) {
	msg := testBypassMessage(models.ItemTypeJewelry, "qa-bot", "Test ring", "http://example.com/1")
	if !strings.Contains(msg.Text, "qa-bot") {
		t.Fatalf("expected seller name in text, got %q", msg.Text)
	}
	if !strings.Contains(msg.Text, "jewelry") {
		t.Fatalf("expected item type in text, got %q", msg.Text)
	}
}
