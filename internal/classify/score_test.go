package classify

import (
	"testing"

	"github.com/dealhunter/ebay-hunter/internal/extract"
	"github.com/dealhunter/ebay-hunter/pkg/models"
)

func TestSellerQuality_HighFeedbackScoresNearMax(t *testing.T) {
	got := sellerQuality(20000, 99.9)
	if got != 15 {
		t.Fatalf("expected max seller quality of 15, got %v", got)
	}
}

func TestSellerQuality_LowFeedbackScoresNearMin(t *testing.T) {
	got := sellerQuality(1, 50)
	want := (1.0 + 1.0) / 15.0 * 15.0
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFormatScore_BestOfferBuyingOptionWins(t *testing.T) {
	got := formatScore("AUCTION", []string{"BEST_OFFER"})
	if got != 10 {
		t.Fatalf("expected 10 for a BEST_OFFER buying option, got %v", got)
	}
}

func TestFormatScore_FallsBackToListingTypeWhenNoOptions(t *testing.T) {
	got := formatScore("FIXED_PRICE", nil)
	if got != 7 {
		t.Fatalf("expected 7 for FIXED_PRICE listing type, got %v", got)
	}
}

func TestCertBonus_PremiumLabScoresFull(t *testing.T) {
	if len(extract.CertLabs.Premium) == 0 {
		t.Skip("no premium cert labs configured")
	}
	lab := extract.CertLabs.Premium[0]
	got := certBonus(lab, "")
	if got != 15 {
		t.Fatalf("expected 15 for a premium cert lab, got %v", got)
	}
}

func TestCertBonus_NoCertButCertifiedClaim(t *testing.T) {
	got := certBonus("", "listing says gia certified stone")
	if got != 3 {
		t.Fatalf("expected 3 for an uncertified 'certified' claim, got %v", got)
	}
}

func TestCertBonus_NoCertNoClaim(t *testing.T) {
	got := certBonus("", "plain ring")
	if got != 0 {
		t.Fatalf("expected 0 when nothing is claimed, got %v", got)
	}
}

func TestDetailBonus_CapsAtTen(t *testing.T) {
	stone := extract.StoneAttributes{
		HasCarat:  true,
		Color:     "G",
		Clarity:   "VS1",
		Shape:     "Round",
		Treatment: extract.TreatmentHeatOnly,
	}
	got := detailBonus(stone)
	if got != 10 {
		t.Fatalf("expected detail bonus capped at 10, got %v", got)
	}
}

func TestComputeRiskScore_LabCreatedAddsThirtyAndMore(t *testing.T) {
	listing := models.ListingSummary{Price: 100, Seller: models.SellerInfo{FeedbackScore: 5000, FeedbackPercentage: 99.9}}
	stone := extract.StoneAttributes{StoneType: "Diamond", HasCarat: true, Carat: 1, Color: "G", Clarity: "VS1"}
	risk := computeRiskScore(listing, stone, "lab-created diamond ring")
	if risk < 30 {
		t.Fatalf("expected risk score to include the 30pt lab-created penalty, got %d", risk)
	}
}

func TestComputeRiskScore_CleanNaturalStoneScoresLow(t *testing.T) {
	returns := true
	listing := models.ListingSummary{
		Price: 5000, ReturnsAccepted: &returns,
		Seller: models.SellerInfo{FeedbackScore: 20000, FeedbackPercentage: 99.9},
	}
	stone := extract.StoneAttributes{
		StoneType: "Sapphire", HasCarat: true, Carat: 2, Color: "Blue", Clarity: "VS1", IsNatural: true,
	}
	risk := computeRiskScore(listing, stone, "natural sapphire ring with gia certificate")
	if risk > 10 {
		t.Fatalf("expected a low risk score for a clean, well-documented natural stone, got %d", risk)
	}
}

func TestClamp_BoundsValue(t *testing.T) {
	if clamp(150, 0, 100) != 100 {
		t.Fatalf("expected clamp to cap above range")
	}
	if clamp(-10, 0, 100) != 0 {
		t.Fatalf("expected clamp to floor below range")
	}
	if clamp(42, 0, 100) != 42 {
		t.Fatalf("expected clamp to pass through in-range values")
	}
}
