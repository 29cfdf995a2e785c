package classify

import (
	"context"
	"testing"

	"github.com/dealhunter/ebay-hunter/pkg/models"
)

type fakeRejectCache struct {
	rejected map[string]bool
}

func (f *fakeRejectCache) IsRejected(ctx context.Context, taskID int64, ebayListingID string) (bool, error) {
	return f.rejected[ebayListingID], nil
}

type fakeMatches struct {
	exists map[string]bool
}

func (f *fakeMatches) Exists(ctx context.Context, itemType models.ItemType, taskID int64, ebayListingID string) (bool, error) {
	return f.exists[ebayListingID], nil
}

type fakeDetailFetcher struct {
	details map[string]*models.NormalizedDetail
}

func (f *fakeDetailFetcher) Fetch(ctx context.Context, itemID, categoryID string, includeShipping bool) (*models.NormalizedDetail, error) {
	return f.details[itemID], nil
}

type fakeMetalPrices struct {
	rows map[string]models.MetalPriceRow
}

func (f *fakeMetalPrices) Get(metal string) (models.MetalPriceRow, bool) {
	r, ok := f.rows[metal]
	return r, ok
}

func newTestPipeline() (*Pipeline, *fakeRejectCache, *fakeMatches, *fakeDetailFetcher, *fakeMetalPrices) {
	rc := &fakeRejectCache{rejected: map[string]bool{}}
	mx := &fakeMatches{exists: map[string]bool{}}
	df := &fakeDetailFetcher{details: map[string]*models.NormalizedDetail{}}
	mp := &fakeMetalPrices{rows: map[string]models.MetalPriceRow{
		"Gold": {Metal: "Gold", PriceGram10K: 30, PriceGram14K: 42, PriceGram18K: 54, PriceGram24K: 72},
	}}
	return &Pipeline{RejectCache: rc, Matches: mx, Detail: df, MetalPrices: mp}, rc, mx, df, mp
}

func basicJewelryTask() *models.Task {
	return &models.Task{
		ID:                1,
		ItemType:          models.ItemTypeJewelry,
		MinSellerFeedback: 0,
		Filters:           models.FilterBag{Jewelry: &models.JewelryFilters{NoStone: true}},
	}
}

func TestClassify_RejectsPreviouslyRejectedListing(t *testing.T) {
	p, rc, _, _, _ := newTestPipeline()
	rc.rejected["item-1"] = true
	task := basicJewelryTask()
	listing := models.ListingSummary{ItemID: "item-1", Title: "14k gold ring"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatalf("expected rejection for a previously-rejected listing")
	}
	if res.RejectReason != "Previously rejected" {
		t.Fatalf("expected 'Previously rejected', got %q", res.RejectReason)
	}
}

func TestClassify_JewelryAcceptsCleanGoldRing(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := basicJewelryTask()
	listing := models.ListingSummary{
		ItemID: "item-2", Title: "Solid 14k gold band 5g", Price: 100,
		Seller: models.SellerInfo{FeedbackScore: 500},
	}
	df.details["item-2"] = &models.NormalizedDetail{
		CategoryID: "281",
		Aspects:    map[string]string{},
	}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("expected acceptance, got reject reason %q", res.RejectReason)
	}
	if res.JewelryMatch == nil {
		t.Fatalf("expected a JewelryMatch payload")
	}
	if res.JewelryMatch.Karat != 14 {
		t.Fatalf("expected extracted karat 14, got %d", res.JewelryMatch.Karat)
	}
}

func TestClassify_JewelryRejectsUnselectedSilver(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := basicJewelryTask()
	listing := models.ListingSummary{
		ItemID: "item-3", Title: "Sterling silver ring", Price: 20,
		Seller: models.SellerInfo{FeedbackScore: 500},
	}
	df.details["item-3"] = &models.NormalizedDetail{CategoryID: "281"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatalf("expected silver to be rejected when not in the task's metal filter")
	}
}

func TestClassify_JewelryRejectsBelowMinFeedback(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := basicJewelryTask()
	task.MinSellerFeedback = 1000
	listing := models.ListingSummary{
		ItemID: "item-4", Title: "14k gold band", Price: 100,
		Seller: models.SellerInfo{FeedbackScore: 10},
	}
	df.details["item-4"] = &models.NormalizedDetail{CategoryID: "281"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatalf("expected rejection below min seller feedback")
	}
	if res.RejectReason != "Seller feedback below minimum" {
		t.Fatalf("expected feedback reject reason, got %q", res.RejectReason)
	}
}

func TestClassify_JewelryRejectsStoneWhenNoStoneRequired(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := basicJewelryTask()
	listing := models.ListingSummary{
		ItemID: "item-5", Title: "14k gold diamond ring", Price: 200,
		Seller: models.SellerInfo{FeedbackScore: 500},
	}
	df.details["item-5"] = &models.NormalizedDetail{CategoryID: "281"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatalf("expected rejection: task requires no_stone but title names a diamond")
	}
}

func TestClassify_TestBypassSkipsGatesForJewelry(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	p.TestSellerName = "qa-bot"
	task := basicJewelryTask()
	listing := models.ListingSummary{
		ItemID: "item-6", Title: "Sterling silver diamond ring (test)", Price: 5,
		Seller: models.SellerInfo{Name: "qa-bot", FeedbackScore: 0},
	}
	df.details["item-6"] = &models.NormalizedDetail{CategoryID: "999999"} // not even in the whitelist

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Accepted || !res.IsTestBypass {
		t.Fatalf("expected the test-seller listing to bypass every gate, got accepted=%v bypass=%v reason=%q",
			res.Accepted, res.IsTestBypass, res.RejectReason)
	}
}

func TestClassify_GemstoneRejectsSimulant(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := &models.Task{ID: 2, ItemType: models.ItemTypeGemstone, Filters: models.FilterBag{Gemstone: &models.GemstoneFilters{}}}
	listing := models.ListingSummary{ItemID: "item-7", Title: "1ct cubic zirconia ring", Price: 20}
	df.details["item-7"] = &models.NormalizedDetail{CategoryID: "10207"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatalf("expected simulant rejection")
	}
}

func TestClassify_GemstoneAcceptsComputesScores(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := &models.Task{ID: 2, ItemType: models.ItemTypeGemstone, Filters: models.FilterBag{Gemstone: &models.GemstoneFilters{}}}
	listing := models.ListingSummary{
		ItemID: "item-8", Title: "Natural 1.5ct round sapphire GIA certified", Price: 500,
		Seller: models.SellerInfo{FeedbackScore: 5000, FeedbackPercentage: 99.8},
	}
	df.details["item-8"] = &models.NormalizedDetail{CategoryID: "10207"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Accepted || res.GemstoneMatch == nil {
		t.Fatalf("expected acceptance with a gemstone match, reason=%q", res.RejectReason)
	}
	if res.GemstoneMatch.DealScore <= 0 {
		t.Fatalf("expected a positive deal score, got %d", res.GemstoneMatch.DealScore)
	}
}

func TestClassify_WatchExtractsAttributes(t *testing.T) {
	p, _, _, df, _ := newTestPipeline()
	task := &models.Task{ID: 3, ItemType: models.ItemTypeWatch, Filters: models.FilterBag{Watch: &models.WatchFilters{}}}
	listing := models.ListingSummary{ItemID: "item-9", Title: "Rolex Submariner 1999 automatic stainless steel", Price: 5000}
	df.details["item-9"] = &models.NormalizedDetail{CategoryID: "281"}

	res, err := p.Classify(context.Background(), task, listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Accepted || res.WatchMatch == nil {
		t.Fatalf("expected acceptance with a watch match")
	}
	if res.WatchMatch.Brand != "Rolex" {
		t.Fatalf("expected brand Rolex, got %q", res.WatchMatch.Brand)
	}
	if res.WatchMatch.Year != 1999 {
		t.Fatalf("expected year 1999, got %d", res.WatchMatch.Year)
	}
}
